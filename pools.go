package gql

import (
	"bytes"
	"sync"
)

// Tiered buffer pools for body construction. Plain operations fit the
// small tier; multipart bodies usually land in the larger ones.
var (
	smallBufferPool = sync.Pool{
		New: func() interface{} {
			return bytes.NewBuffer(make([]byte, 0, 1024))
		},
	}

	mediumBufferPool = sync.Pool{
		New: func() interface{} {
			return bytes.NewBuffer(make([]byte, 0, 4096))
		},
	}

	largeBufferPool = sync.Pool{
		New: func() interface{} {
			return bytes.NewBuffer(make([]byte, 0, 16384))
		},
	}
)

func getBuffer(estimatedSize int) *bytes.Buffer {
	switch {
	case estimatedSize <= 1024:
		return smallBufferPool.Get().(*bytes.Buffer)
	case estimatedSize <= 4096:
		return mediumBufferPool.Get().(*bytes.Buffer)
	default:
		return largeBufferPool.Get().(*bytes.Buffer)
	}
}

func putBuffer(buf *bytes.Buffer) {
	buf.Reset()
	switch {
	case buf.Cap() <= 1024:
		smallBufferPool.Put(buf)
	case buf.Cap() <= 4096:
		mediumBufferPool.Put(buf)
	default:
		largeBufferPool.Put(buf)
	}
}
