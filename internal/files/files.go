package files

import (
	"github.com/rs/zerolog/log"
)

// Output files stored for each execution.
const (
	OutputFile    = "output"
	OutputErrFile = "output_err"
)

type File struct {
	ID   string
	Name string
	Data []byte
}

type Files interface {
	WriteFile(file *File) error
	WriteFiles(files ...*File) []error
	GetFile(id string, name string) ([]byte, error)
}

type LocalConfig struct {
	LocalRootPath string
}

type S3Config struct {
	BucketName string
}

type Config struct {
	Local *LocalConfig
	S3    *S3Config

	// ForceLocalMode keeps every file on the local disk even when a bucket
	// has been configured.
	ForceLocalMode bool
}

// NewFilesHandler returns the S3 handler when a bucket is configured and
// local mode is not forced, otherwise files are kept on the local disk.
func NewFilesHandler(config *Config) (Files, error) {
	if !config.ForceLocalMode && config.S3 != nil && config.S3.BucketName != "" {
		log.Info().Str("bucket", config.S3.BucketName).Msg("storing execution files in S3")
		return newS3Files(config.S3)
	}

	log.Info().Str("root", config.Local.LocalRootPath).Msg("storing execution files locally")
	return newLocalFiles(config.Local)
}
