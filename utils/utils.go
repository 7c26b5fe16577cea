package utils

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/ucci-lang/ucci/token"
	"gopkg.in/yaml.v3"
)

// SourceExt is the file extension of script sources.
const SourceExt = ".ucci"

// ErrorAt is a compile-time error attached to a token.
type ErrorAt struct {
	Where token.Token
	Err   error
}

func (e ErrorAt) Error() string {
	return fmt.Sprintf("[Line %d] Error %s: %s", e.Where.Line, e.Where.Where(), e.Err.Error())
}

func (e ErrorAt) Unwrap() error {
	return e.Err
}

type TestData struct {
	Label    string
	Enable   bool
	Input    string
	Expected map[string]string
}

func ReadTestData(s []byte) []TestData {
	var data []TestData
	if err := yaml.Unmarshal(s, &data); err != nil {
		panic(err)
	}

	// Remove disabled test cases.
	i := 0
	for _, d := range data {
		if d.Enable {
			data[i] = d
			i++
		}
	}
	data = data[:i]

	return data
}

// FindSourceFiles returns every script under dir, in lexical order.
func FindSourceFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(path, SourceExt) {
			files = append(files, path)
		}
		return nil
	})

	return files, err
}
