package uploads

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/jobkit/appform/internal/logger"
	"github.com/jobkit/appform/pkg/capture"
	"github.com/jobkit/appform/pkg/schema"
)

// Pipeline resolves a batch of pending files one at a time, in field
// declaration order, routing each by its field type. The first failure aborts
// the remaining uploads; no partial-success state escapes.
type Pipeline struct {
	uploader Uploader
	log      logger.Logger
}

// NewPipeline builds a pipeline over the given uploader. A nil logger is
// replaced with a no-op.
func NewPipeline(uploader Uploader, log logger.Logger) *Pipeline {
	return &Pipeline{
		uploader: uploader,
		log:      logger.OrNop(log),
	}
}

// UploadAll walks order, skipping names with no pending file, and returns the
// descriptor map keyed by field name. Iterating the caller-supplied order
// keeps upload sequence deterministic regardless of map layout.
func (p *Pipeline) UploadAll(ctx context.Context, order []string, files map[string]*capture.File, types map[string]schema.FieldType) (map[string]UploadedFile, error) {
	uploaded := make(map[string]UploadedFile, len(files))

	for _, fieldName := range order {
		file := files[fieldName]
		if file == nil {
			continue
		}

		var (
			descriptor UploadedFile
			err        error
		)
		switch types[fieldName] {
		case schema.FieldTypeVoiceRecording:
			descriptor, err = p.uploader.UploadVoice(ctx, file, VoiceMaxDuration)
		case schema.FieldTypeVideoRecording:
			descriptor, err = p.uploader.UploadVideo(ctx, file, VideoQuality)
		default:
			descriptor, err = p.uploader.UploadDocument(ctx, file)
		}
		if err != nil {
			p.log.Error("upload failed", zap.String("field", fieldName), zap.Error(err))
			return nil, fmt.Errorf("failed to upload %s: %w", fieldName, err)
		}

		p.log.Info("uploaded field file",
			zap.String("field", fieldName),
			zap.String("url", descriptor.URL),
			zap.Int64("size", descriptor.Size))
		uploaded[fieldName] = descriptor
	}

	return uploaded, nil
}
