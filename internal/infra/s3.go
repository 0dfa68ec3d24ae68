package infra

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/portyard/yardboard/internal/app/appconfig"
)

// S3 builds the archive client. It returns a nil *s3.Client when no archive
// bucket is configured.
func S3(conf *appconfig.Config) (*s3.Client, error) {
	if conf.ArchiveBucket == "" {
		log.Warn().Msg("infra: s3: archive bucket not configured, source file archiving is disabled")
		return nil, nil
	}

	var opts []func(*config.LoadOptions) error
	if conf.ArchiveAccessKey != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(conf.ArchiveAccessKey, conf.ArchiveSecretKey, ""),
		))
	}

	cfg, err := config.LoadDefaultConfig(context.Background(), opts...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load aws config")
	}
	return s3.NewFromConfig(cfg, func(o *s3.Options) {
		if conf.ArchiveEndpoint != "" {
			o.BaseEndpoint = aws.String(conf.ArchiveEndpoint)
			o.UsePathStyle = true
		}
	}), nil
}
