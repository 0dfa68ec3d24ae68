package service

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/zeebo/xxh3"

	"github.com/portyard/yardboard/internal/app/appconfig"
	"github.com/portyard/yardboard/internal/pkg/archiver"
)

const (
	RealmWorkbooks = "workbooks"
	RealmSchedules = "schedules"

	ArchiveS3Prefix = "v1/"

	archiveTimeout = 2 * time.Minute
)

// Archive keeps copies of uploaded source files in S3. It is a no-op when no
// archive bucket is configured.
type Archive struct {
	archivers map[string]*archiver.Archiver
	wg        sync.WaitGroup
}

func NewArchive(conf *appconfig.Config, s3Client *s3.Client) *Archive {
	if s3Client == nil {
		return &Archive{}
	}
	return newArchive(s3Client, conf.ArchiveBucket)
}

func newArchive(store archiver.ObjectStore, bucket string) *Archive {
	a := &Archive{archivers: map[string]*archiver.Archiver{}}
	for _, realm := range []string{RealmWorkbooks, RealmSchedules} {
		a.archivers[realm] = &archiver.Archiver{
			S3Client:  store,
			S3Bucket:  bucket,
			S3Prefix:  ArchiveS3Prefix,
			RealmName: realm,
		}
	}
	return a
}

func (a *Archive) Enabled() bool {
	return len(a.archivers) > 0
}

// ArchiveAsync uploads content in the background. An empty fingerprint is
// replaced by a hash of the content.
func (a *Archive) ArchiveAsync(realm, fingerprint, fileName string, content []byte) {
	if !a.Enabled() {
		return
	}
	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), archiveTimeout)
		defer cancel()
		if _, err := a.Archive(ctx, realm, fingerprint, fileName, content); err != nil {
			log.Warn().
				Str("evt.name", "archive.failed").
				Str("realm", realm).
				Str("file", fileName).
				Err(err).
				Msg("failed to archive uploaded file")
		}
	}()
}

// Archive uploads content synchronously and returns the object key. A file that
// is already archived is not an error.
func (a *Archive) Archive(ctx context.Context, realm, fingerprint, fileName string, content []byte) (string, error) {
	arc, ok := a.archivers[realm]
	if !ok {
		return "", errors.Errorf("unknown archive realm %q", realm)
	}
	if fingerprint == "" {
		fingerprint = strconv.FormatUint(xxh3.Hash(content), 16)
	}
	key, err := arc.Archive(ctx, time.Now(), fingerprint, fileName, content)
	if errors.Is(err, archiver.ErrFileAlreadyExists) {
		log.Debug().Str("key", key).Msg("file already archived")
		return key, nil
	}
	return key, err
}

// Wait blocks until background archiving has finished.
func (a *Archive) Wait() {
	a.wg.Wait()
}
