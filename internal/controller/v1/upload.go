package v1

import (
	"io"

	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"

	"github.com/portyard/yardboard/internal/pkg/yderr"
)

const uploadField = "file"

type upload struct {
	FileName    string
	ContentType string
	Content     []byte
}

func readUpload(ctx *fiber.Ctx) (*upload, error) {
	fh, err := ctx.FormFile(uploadField)
	if err != nil {
		return nil, yderr.ErrInvalidReq.Msg("multipart field %q is required", uploadField)
	}
	f, err := fh.Open()
	if err != nil {
		return nil, errors.Wrap(err, "failed to open uploaded file")
	}
	defer f.Close()

	content, err := io.ReadAll(f)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read uploaded file")
	}
	return &upload{
		FileName:    fh.Filename,
		ContentType: fh.Header.Get(fiber.HeaderContentType),
		Content:     content,
	}, nil
}
