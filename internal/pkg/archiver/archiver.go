package archiver

import (
	"bytes"
	"compress/gzip"
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const FileExt = ".gz"

var ErrFileAlreadyExists = errors.New("file already exists")

// ObjectStore is the subset of *s3.Client the archiver relies on.
type ObjectStore interface {
	HeadObject(ctx context.Context, params *s3.HeadObjectInput, optFns ...func(*s3.Options)) (*s3.HeadObjectOutput, error)
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// Archiver stores gzip-compressed copies of uploaded source files.
type Archiver struct {
	S3Client ObjectStore
	S3Bucket string

	// S3Prefix is for the files in the bucket with no leading slash but optionally (typically) with trailing slash
	// e.g. "v1/" or simply "" (empty string)
	S3Prefix string

	RealmName string

	logger *zerolog.Logger
}

func (a *Archiver) initLogger() {
	if a.logger == nil {
		logger := log.With().
			Str("module", "archiver").
			Str("realm", a.RealmName).
			Logger()
		a.logger = &logger
	}
}

// CanonicalKey is the object key of a file; identical content on the same day maps to the same key.
func (a *Archiver) CanonicalKey(at time.Time, fingerprint, fileName string) string {
	ext := strings.ToLower(path.Ext(fileName))
	return a.S3Prefix + a.RealmName + "/" + at.UTC().Format("2006-01-02") + "/" + a.RealmName + "_" + fingerprint + ext + FileExt
}

// Archive uploads content under its canonical key and returns that key.
// ErrFileAlreadyExists is returned when the object is already archived.
func (a *Archiver) Archive(ctx context.Context, at time.Time, fingerprint, fileName string, content []byte) (string, error) {
	a.initLogger()

	key := a.CanonicalKey(at, fingerprint, fileName)
	if err := a.assertS3FileNonExistence(ctx, key); err != nil {
		return key, err
	}
	a.logger.Trace().Str("key", key).Msg("asserted S3 file non-existence")

	var buf bytes.Buffer
	gzipWriter := gzip.NewWriter(&buf)
	gzipWriter.Name = fileName
	if _, err := gzipWriter.Write(content); err != nil {
		return key, errors.Wrap(err, "failed to compress file")
	}
	if err := gzipWriter.Close(); err != nil {
		return key, errors.Wrap(err, "failed to flush gzip stream")
	}

	if _, err := a.S3Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:            aws.String(a.S3Bucket),
		Key:               aws.String(key),
		Body:              bytes.NewReader(buf.Bytes()),
		ContentEncoding:   aws.String("gzip"),
		StorageClass:      types.StorageClassStandardIa,
		ChecksumAlgorithm: types.ChecksumAlgorithmSha256,
	}); err != nil {
		return key, errors.Wrap(err, "failed to invoke PutObject")
	}
	a.logger.Debug().Str("key", key).Int("size", buf.Len()).Msg("uploaded to S3")

	return key, nil
}

func (a *Archiver) assertS3FileNonExistence(ctx context.Context, key string) error {
	object, err := a.S3Client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(a.S3Bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		var ae smithy.APIError
		if errors.As(err, &ae) {
			if ae.ErrorCode() == "NotFound" {
				return nil
			}
		}
		return errors.Wrap(err, "failed to invoke HeadObject")
	}
	return errors.Wrap(ErrFileAlreadyExists, fmt.Sprintf("file \"%s\" already exists in s3 with LastModified \"%s\"", key, object.LastModified))
}
