package files

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/suite"
)

type LocalFilesSuite struct {
	suite.Suite
	files Files
}

func (s *LocalFilesSuite) SetupTest() {
	handler, err := NewFilesHandler(&Config{
		Local:          &LocalConfig{LocalRootPath: s.T().TempDir()},
		S3:             &S3Config{BucketName: "unused"},
		ForceLocalMode: true,
	})

	s.Require().NoError(err)
	s.files = handler
}

func (s *LocalFilesSuite) TestWriteAndGetFile() {
	s.NoError(s.files.WriteFile(&File{ID: "abc", Name: OutputFile, Data: []byte("hello\nworld")}))

	data, err := s.files.GetFile("abc", OutputFile)

	s.NoError(err)
	s.Equal("hello\nworld", string(data))
}

func (s *LocalFilesSuite) TestWriteFiles() {
	errs := s.files.WriteFiles(
		&File{ID: "abc", Name: OutputFile, Data: []byte("out")},
		&File{ID: "abc", Name: OutputErrFile, Data: []byte("err")},
	)

	s.Empty(errs)

	out, _ := s.files.GetFile("abc", OutputFile)
	outErr, _ := s.files.GetFile("abc", OutputErrFile)

	s.Equal("out", string(out))
	s.Equal("err", string(outErr))
}

func (s *LocalFilesSuite) TestMissingFile() {
	_, err := s.files.GetFile("missing", OutputFile)

	s.True(errors.Is(err, ErrNotFound))
}

func (s *LocalFilesSuite) TestPathsStayInsideRoot() {
	s.NoError(s.files.WriteFile(&File{ID: "../../escape", Name: "../name", Data: []byte("x")}))

	data, err := s.files.GetFile("escape", "name")

	s.NoError(err)
	s.Equal("x", string(data))
}

func TestLocalFilesSuite(t *testing.T) {
	suite.Run(t, new(LocalFilesSuite))
}
