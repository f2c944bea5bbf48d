package storage_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/filebox/core/storage"
)

func TestFormatSize(t *testing.T) {
	cases := []struct {
		size int64
		want string
	}{
		{0, "0 B"},
		{1, "1.00 B"},
		{512, "512.00 B"},
		{1023, "1023.00 B"},
		{1024, "1.00 KB"},
		{1536, "1.50 KB"},
		{1048576, "1.00 MB"},
		{2465792, "2.35 MB"},
		{1073741824, "1.00 GB"},
		{1099511627776, "1024.00 GB"},
		{1649267441664, "1536.00 GB"},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, storage.FormatSize(tc.size), "size %d", tc.size)
	}
}
