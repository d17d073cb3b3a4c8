// Package runner は画面を介さない一括実行（ヘッドレスモード）を担います。
package runner

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"path"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/shouni/go-canvas-kit/internal/config"
	"github.com/shouni/go-canvas-kit/pkg/dataurl"
	"github.com/shouni/go-canvas-kit/pkg/domain"
	"github.com/shouni/go-canvas-kit/pkg/flow"
	"github.com/shouni/go-canvas-kit/pkg/generator"
	"github.com/shouni/go-canvas-kit/pkg/utils"

	"github.com/shouni/go-remote-io/pkg/remoteio"
)

// GenerateRunner は、プロンプト1つからバリエーション画像を生成して保存します。
// 画面と同じ flow.Controller を通すため、検証やファイル命名の挙動は TUI と共通です。
type GenerateRunner struct {
	generator generator.CanvasGenerator
	writer    remoteio.OutputWriter
	opts      config.GenerateOptions
}

// NewGenerateRunner は GenerateRunner を初期化します。
func NewGenerateRunner(gen generator.CanvasGenerator, writer remoteio.OutputWriter, opts config.GenerateOptions) (*GenerateRunner, error) {
	if gen == nil {
		return nil, fmt.Errorf("generator is required")
	}
	if writer == nil {
		return nil, fmt.Errorf("writer is required")
	}
	return &GenerateRunner{
		generator: gen,
		writer:    writer,
		opts:      opts,
	}, nil
}

// Run はバリエーション数ぶんの画像を並列生成し、保存したパスの一覧を返します。
func (r *GenerateRunner) Run(ctx context.Context) ([]string, error) {
	count := r.opts.Variations
	if count < 1 {
		count = config.DefaultVariations
	}
	if count > config.MaxVariations {
		count = config.MaxVariations
	}

	// 検証は画面と同じ入口で行う。空プロンプトはここで止まり、外部呼び出しは発生しない
	probe := flow.NewController(flow.Hooks{})
	if err := probe.Submit(r.opts.Prompt); err != nil {
		return nil, err
	}

	slog.Info("一括生成を開始します", "count", count, "output_dir", r.opts.OutputDir)

	files := make([]*domain.BinaryFile, count)
	eg, egCtx := errgroup.WithContext(ctx)

	for i := 0; i < count; i++ {
		i := i
		eg.Go(func() error {
			resp, err := r.generator.Generate(egCtx, domain.GenerationRequest{
				Prompt:       r.opts.Prompt,
				AspectRatio:  r.opts.AspectRatio,
				ReferenceURL: r.opts.ReferenceURL,
				Seed:         r.seedFor(i),
			})
			if err != nil {
				return fmt.Errorf("バリエーション %d の生成に失敗しました: %w", i+1, err)
			}

			files[i] = &domain.BinaryFile{
				Name:     variationName(resp.MimeType, time.Now(), i),
				MimeType: resp.MimeType,
				Data:     resp.Data,
			}
			slog.Info("生成に成功しました", "variation", i+1, "bytes", files[i].Size())
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}

	// 保存は生成がすべて成功してからまとめて行う
	saved := make([]string, 0, count)
	for _, file := range files {
		outPath := path.Join(r.opts.OutputDir, file.Name)
		if err := r.writer.Write(ctx, outPath, bytes.NewReader(file.Data), file.MimeType); err != nil {
			return saved, fmt.Errorf("'%s' の保存に失敗しました: %w", outPath, err)
		}
		saved = append(saved, outPath)
	}

	slog.Info("すべてのバリエーションを保存しました", "total", len(saved))
	return saved, nil
}

// seedFor は固定シード指定時にバリエーションごとへ連番でずらしたシードを返します。
func (r *GenerateRunner) seedFor(i int) *int64 {
	base := utils.SeedPtr(r.opts.Seed)
	if base == nil {
		return nil
	}
	return utils.SeedPtr(*base + int64(i))
}

// variationName は generated-<unix>.<ext> をベースに、複数枚のときだけ連番を差し込みます。
func variationName(mimeType string, t time.Time, i int) string {
	name := dataurl.FileName(mimeType, t)
	if i == 0 {
		return name
	}
	ext := path.Ext(name)
	return fmt.Sprintf("%s-%d%s", name[:len(name)-len(ext)], i+1, ext)
}
