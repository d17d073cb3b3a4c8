package domain

import (
	"errors"
	"strings"
)

// ErrEmptyPrompt は空白のみのプロンプトで生成を要求した場合のエラーです。
var ErrEmptyPrompt = errors.New("prompt is empty")

// GenerationRequest は単一の画像生成要求です。
// Prompt はユーザーが入力した自然言語の描写指示を保持します。
type GenerationRequest struct {
	Prompt         string
	NegativePrompt string
	AspectRatio    string
	ReferenceURL   string
	Seed           *int64
}

// Validate はプロンプトが空白のみでないことを確認します。
// ネットワーク呼び出しの前段で必ず実行される前提です。
func (r GenerationRequest) Validate() error {
	if strings.TrimSpace(r.Prompt) == "" {
		return ErrEmptyPrompt
	}
	return nil
}

// ImageResponse は生成された画像データとそのメタデータです。
type ImageResponse struct {
	Data     []byte
	MimeType string
	UsedSeed int64 // 戻り値は情報欠落を防ぐため int64
}

// BinaryFile は呼び出し元へ所有権ごと引き渡すデコード済みファイルです。
// 引き渡し後にこちら側で保持・再利用することはありません。
type BinaryFile struct {
	Name     string
	MimeType string
	Data     []byte
}

// Size はファイルのバイト長を返します。
func (f BinaryFile) Size() int {
	return len(f.Data)
}
