// Package dataurl は data:<mime>;base64,<payload> 形式の文字列と
// domain.BinaryFile との相互変換を担います。
package dataurl

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shouni/go-canvas-kit/pkg/domain"
)

// ErrInvalidDataURL は data URL として解釈できない入力を示すセンチネルエラーです。
var ErrInvalidDataURL = errors.New("invalid data URL")

const scheme = "data:"

// Decode は data URL 文字列をデコードし、指定されたファイル名を持つ
// BinaryFile として返します。MIME タイプはヘッダー部の最初のコロンと
// セミコロンの間から抽出します。
func Decode(s, filename string) (*domain.BinaryFile, error) {
	header, payload, found := strings.Cut(s, ",")
	if !found {
		return nil, fmt.Errorf("%w: カンマ区切りのペイロードがありません", ErrInvalidDataURL)
	}

	mimeType, err := extractMimeType(header)
	if err != nil {
		return nil, err
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: base64デコードに失敗しました: %v", ErrInvalidDataURL, err)
	}

	return &domain.BinaryFile{
		Name:     filename,
		MimeType: mimeType,
		Data:     data,
	}, nil
}

// Encode はバイト列を data URL 文字列に変換します。Decode の逆操作です。
func Encode(mimeType string, data []byte) string {
	return scheme + mimeType + ";base64," + base64.StdEncoding.EncodeToString(data)
}

// FileName は引き渡し用の generated-<unix秒>.<拡張子> 形式の名前を生成します。
// 未知の MIME タイプは png として扱います。
func FileName(mimeType string, t time.Time) string {
	ext := "png"
	if sub, ok := strings.CutPrefix(mimeType, "image/"); ok && sub != "" {
		ext = sub
	}
	return fmt.Sprintf("generated-%d.%s", t.Unix(), ext)
}

// extractMimeType は "data:image/png;base64" 形式のヘッダーから MIME タイプを取り出します。
func extractMimeType(header string) (string, error) {
	colon := strings.Index(header, ":")
	semicolon := strings.Index(header, ";")
	if colon < 0 || semicolon < 0 || semicolon <= colon+1 {
		return "", fmt.Errorf("%w: ヘッダーからMIMEタイプを抽出できません: %q", ErrInvalidDataURL, header)
	}
	return header[colon+1 : semicolon], nil
}
