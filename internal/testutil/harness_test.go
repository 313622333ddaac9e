package testutil

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSafeBuffer_ConcurrentWrites(t *testing.T) {
	t.Parallel()

	var buf SafeBuffer
	var wg sync.WaitGroup
	for range 10 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = buf.Write([]byte("x"))
		}()
	}
	wg.Wait()

	assert.Len(t, buf.String(), 10)
}

func TestWriteFiles(t *testing.T) {
	t.Parallel()

	dir := WriteFiles(t, map[string]string{"docs/a.bnb": "place A\n"})

	data, err := os.ReadFile(filepath.Join(dir, "docs", "a.bnb"))
	require.NoError(t, err)
	assert.Equal(t, "place A\n", string(data))
}
