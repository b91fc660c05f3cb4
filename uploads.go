package gql

import (
	"fmt"
	"io"
	"mime/multipart"
	"reflect"
	"sort"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
	"github.com/pkg/errors"
)

// Upload marks a variable value as a file payload. When an operation
// carries uploads the client switches to the GraphQL multipart request
// encoding and the upload serializes as null inside the operations field.
type Upload struct {
	R    io.Reader
	Name string
}

func (u Upload) MarshalJSON() ([]byte, error) {
	return []byte("null"), nil
}

type uploadEntry struct {
	upload Upload
	path   string
}

// collectUploads walks a variables tree and returns every upload with
// its dotted path. Array indices and object keys are treated alike as
// path segments. Entries come back sorted by path so numbering stays
// stable regardless of map iteration order. Two paths holding the same
// Upload value produce two entries; grouping is not re-derived.
func collectUploads(path string, in interface{}) []uploadEntry {
	entries := walkUploads(path, in)
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].path < entries[j].path
	})
	return entries
}

func walkUploads(path string, in interface{}) []uploadEntry {
	switch v := in.(type) {
	case nil:
		return nil
	case Upload:
		return []uploadEntry{{path: path, upload: v}}
	case *Upload:
		if v == nil {
			return nil
		}
		return []uploadEntry{{path: path, upload: *v}}
	}

	value := reflect.ValueOf(in)
	switch value.Kind() {
	case reflect.Slice, reflect.Array:
		var entries []uploadEntry
		for i := 0; i < value.Len(); i++ {
			entries = append(entries, walkUploads(fmt.Sprintf("%s.%d", path, i), value.Index(i).Interface())...)
		}
		return entries
	case reflect.Map:
		var entries []uploadEntry
		iter := value.MapRange()
		for iter.Next() {
			entries = append(entries, walkUploads(fmt.Sprintf("%s.%v", path, iter.Key().Interface()), iter.Value().Interface())...)
		}
		return entries
	case reflect.Struct:
		var entries []uploadEntry
		structType := value.Type()
		for i := 0; i < value.NumField(); i++ {
			field := value.Field(i)
			if !field.CanInterface() {
				continue
			}
			name := structType.Field(i).Name
			if tag := structType.Field(i).Tag.Get("json"); tag != "" {
				if comma := strings.Index(tag, ","); comma >= 0 {
					tag = tag[:comma]
				}
				if tag == "-" {
					continue
				}
				if tag != "" {
					name = tag
				}
			}
			entries = append(entries, walkUploads(path+"."+name, field.Interface())...)
		}
		return entries
	case reflect.Ptr:
		if value.IsNil() {
			return nil
		}
		return walkUploads(path, value.Elem().Interface())
	}
	return nil
}

// buildMultipartBody encodes an operation per the GraphQL multipart
// request spec: an operations field with uploads nulled, a map field
// pointing numeric keys at variable paths, and one field per key
// holding the payload. Keys start at "1".
func buildMultipartBody(operation Operation, uploads []uploadEntry) ([]byte, string, error) {
	operationsJSON, err := json.Marshal(operation)
	if err != nil {
		return nil, "", errors.Wrap(err, "can't serialize operation")
	}

	buf := getBuffer(len(operationsJSON) + 1024)
	defer putBuffer(buf)
	writer := multipart.NewWriter(buf)

	if err = writer.WriteField("operations", string(operationsJSON)); err != nil {
		return nil, "", errors.Wrap(err, "can't write operations field")
	}

	filesMap := make(map[string][]string, len(uploads))
	for i, entry := range uploads {
		filesMap[strconv.Itoa(i+1)] = []string{entry.path}
	}
	mapJSON, err := json.Marshal(filesMap)
	if err != nil {
		return nil, "", errors.Wrap(err, "can't serialize files map")
	}
	if err = writer.WriteField("map", string(mapJSON)); err != nil {
		return nil, "", errors.Wrap(err, "can't write map field")
	}

	for i, entry := range uploads {
		part, err := writer.CreateFormFile(strconv.Itoa(i+1), entry.upload.Name)
		if err != nil {
			return nil, "", errors.Wrap(err, "can't create file field")
		}
		if _, err = io.Copy(part, entry.upload.R); err != nil {
			return nil, "", errors.Wrapf(err, "can't write file %q", entry.upload.Name)
		}
	}

	if err = writer.Close(); err != nil {
		return nil, "", errors.Wrap(err, "can't finalize multipart body")
	}

	body := make([]byte, buf.Len())
	copy(body, buf.Bytes())
	return body, writer.FormDataContentType(), nil
}
