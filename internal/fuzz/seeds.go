package fuzztests

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

const (
	maxSeedBytes = 64 << 10 // 64 KiB: ограничение для тестового корпуса
)

var seedExtensions = map[string]bool{".css": true, ".scss": true, ".less": true}

// inlineSeeds are the recovery cases worth keeping even without testdata.
var inlineSeeds = []string{
	"",
	"a { color: red",
	".x { color : ; }",
	"@unknown-thing { }",
	"a{b:c}}}}",
	"{{{{",
	"@media (",
	"a[href=",
	"url(",
	"/* unterminated",
	"\"unterminated",
	"$x: #{",
	"@{",
	".m(@a; @b) when (@a > 0",
	"a { b: 1px !important !default; }",
	"@charset 1;",
	"\x00\xff\xfe",
}

func addCorpusSeeds(f *testing.F) {
	for _, s := range inlineSeeds {
		f.Add([]byte(s), uint8(0))
	}
	addTestdataSeeds(f)
}

func addTestdataSeeds(f *testing.F) {
	root := filepath.Join("..", "..", "testdata")
	if _, err := os.Stat(root); err != nil {
		return
	}
	// проходим по дереву testdata, добавляем все таблицы стилей
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil || d.IsDir() || !seedExtensions[filepath.Ext(path)] {
			return nil
		}
		// #nosec G304 -- path comes from repository testdata walk
		src, err := os.ReadFile(path)
		if err != nil {
			return nil
		}
		f.Add(clampSeed(src), dialectSeed(filepath.Ext(path)))
		return nil
	})
}

func dialectSeed(ext string) uint8 {
	switch ext {
	case ".scss":
		return 1
	case ".less":
		return 2
	}
	return 0
}

func clampSeed(src []byte) []byte {
	if len(src) <= maxSeedBytes {
		return append([]byte(nil), src...)
	}
	return append([]byte(nil), src[:maxSeedBytes]...)
}
