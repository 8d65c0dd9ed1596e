package filename

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSecure(t *testing.T) {
	cases := map[string]string{
		"My cool movie.mov":             "My_cool_movie.mov",
		"../../../etc/passwd":           "etc_passwd",
		`..\..\windows\system32`:        "windows_system32",
		"i contain cool ümläuts.txt": "i_contain_cool_umlauts.txt",
		"photo.PNG":                     "photo.PNG",
		"  spaced   out  .txt":          "spaced_out_.txt",
		"con.txt":                       "_con.txt",
		"日本語":            "",
		"...":                           "",
		"report;rm -rf.pdf":             "reportrm_-rf.pdf",
	}

	for in, want := range cases {
		assert.Equal(t, want, Secure(in), "Secure(%q)", in)
	}
}

func TestExtension(t *testing.T) {
	ext, ok := Extension("archive.tar.GZ")
	assert.True(t, ok)
	assert.Equal(t, "gz", ext)

	_, ok = Extension("README")
	assert.False(t, ok)

	ext, ok = Extension("trailing.")
	assert.True(t, ok)
	assert.Equal(t, "", ext)
}

func TestWithSuffix(t *testing.T) {
	assert.Equal(t, "photo_1.png", WithSuffix("photo.png", 1))
	assert.Equal(t, "a.b_3.txt", WithSuffix("a.b.txt", 3))
	assert.Equal(t, "notes_2", WithSuffix("notes", 2))
}

func TestIsPlain(t *testing.T) {
	assert.True(t, IsPlain("photo.png"))
	assert.False(t, IsPlain("../photo.png"))
	assert.False(t, IsPlain("a/b.png"))
	assert.False(t, IsPlain(".."))
	assert.False(t, IsPlain(""))
}
