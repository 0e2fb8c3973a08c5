package sqlite

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPending(t *testing.T) {
	fsys := fstest.MapFS{
		"010_later.up.sql":  {Data: []byte("SELECT 1;")},
		"002_next.up.sql":   {Data: []byte("SELECT 1;")},
		"001_kv.up.sql":     {Data: []byte("SELECT 1;")},
		"001_kv.down.sql":   {Data: []byte("SELECT 1;")},
		"notes.up.sql":      {Data: []byte("SELECT 1;")},
		"abc_broken.up.sql": {Data: []byte("SELECT 1;")},
	}

	todo, err := pending(fsys, 1)

	require.NoError(t, err)
	assert.Equal(t, []migration{
		{version: 2, name: "002_next.up.sql"},
		{version: 10, name: "010_later.up.sql"},
	}, todo)
}
