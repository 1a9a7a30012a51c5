package files

import (
	"os"
	"path"

	"github.com/Taraxa-project/taraxa-state-digest/taraxa/util"
)

func CreateDirectories(path_segments ...string) string {
	p := path.Join(path_segments...)
	util.PanicIfNotNil(os.MkdirAll(p, os.ModePerm))
	return p
}

func CreateDirectoriesClean(path_segments ...string) string {
	return CreateDirectories(RemoveAll(path_segments...))
}

func RemoveAll(path_segments ...string) string {
	p := path.Join(path_segments...)
	util.PanicIfNotNil(os.RemoveAll(p))
	return p
}

func Exists(path_segments ...string) bool {
	_, err := os.Stat(path.Join(path_segments...))
	return !os.IsNotExist(err)
}
