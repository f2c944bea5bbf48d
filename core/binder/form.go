package binder

import (
	"errors"
	"fmt"
	"mime"
	"mime/multipart"
	"net/http"
	"reflect"
	"strconv"
	"strings"
)

// DefaultMaxMemory caps the in-memory portion of multipart parsing at 10MB.
// Larger file parts spill to temporary files.
const DefaultMaxMemory = 10 << 20

// Form returns a binder that populates struct fields from URL-encoded or
// multipart form data. Value fields use the `form` tag, uploaded files use
// the `file` tag:
//
//	type uploadForm struct {
//		Comment string                  `form:"comment"`
//		Doc     *multipart.FileHeader   `file:"doc"`
//		Photos  []*multipart.FileHeader `file:"photos"`
//	}
func Form() Binder {
	return func(r *http.Request, v any) error {
		rv := reflect.ValueOf(v)
		if rv.Kind() != reflect.Ptr || rv.IsNil() || rv.Elem().Kind() != reflect.Struct {
			return ErrUnsupportedTargetType
		}

		contentType := r.Header.Get("Content-Type")
		mediaType, params, err := mime.ParseMediaType(contentType)
		if err != nil {
			return fmt.Errorf("%w: %s", ErrUnsupportedContentType, contentType)
		}

		switch {
		case mediaType == "application/x-www-form-urlencoded":
			if err := r.ParseForm(); err != nil {
				return fmt.Errorf("%w: %w", ErrInvalidFormData, err)
			}
			return bindFields(rv.Elem(), r.PostForm, nil)

		case mediaType == "multipart/form-data":
			if params["boundary"] == "" {
				return fmt.Errorf("%w: missing multipart boundary", ErrInvalidFormData)
			}
			if err := r.ParseMultipartForm(DefaultMaxMemory); err != nil {
				return fmt.Errorf("%w: %w", ErrInvalidFormData, err)
			}
			return bindFields(rv.Elem(), r.MultipartForm.Value, r.MultipartForm.File)

		default:
			return fmt.Errorf("%w: %s", ErrUnsupportedContentType, mediaType)
		}
	}
}

func bindFields(sv reflect.Value, values map[string][]string, files map[string][]*multipart.FileHeader) error {
	st := sv.Type()

	for i := 0; i < st.NumField(); i++ {
		field := st.Field(i)
		if !field.IsExported() {
			continue
		}

		if name, ok := field.Tag.Lookup("form"); ok && name != "" && name != "-" {
			if vals, found := values[name]; found && len(vals) > 0 {
				if err := setValueField(sv.Field(i), vals); err != nil {
					return fmt.Errorf("field %s: %w", field.Name, err)
				}
			}
			continue
		}

		if name, ok := field.Tag.Lookup("file"); ok && name != "" && name != "-" {
			if headers, found := files[name]; found && len(headers) > 0 {
				if err := setFileField(sv.Field(i), headers); err != nil {
					return fmt.Errorf("field %s: %w", field.Name, err)
				}
			}
		}
	}

	return nil
}

func setValueField(fv reflect.Value, vals []string) error {
	switch fv.Kind() {
	case reflect.String:
		fv.SetString(vals[0])
	case reflect.Bool:
		b, err := strconv.ParseBool(strings.TrimSpace(vals[0]))
		if err != nil {
			return fmt.Errorf("parse bool: %w", err)
		}
		fv.SetBool(b)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(strings.TrimSpace(vals[0]), 10, 64)
		if err != nil {
			return fmt.Errorf("parse int: %w", err)
		}
		fv.SetInt(n)
	case reflect.Slice:
		if fv.Type().Elem().Kind() != reflect.String {
			return fmt.Errorf("%w: %s", ErrUnsupportedFieldType, fv.Type())
		}
		fv.Set(reflect.ValueOf(vals))
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedFieldType, fv.Type())
	}
	return nil
}

var (
	fileHeaderType      = reflect.TypeOf((*multipart.FileHeader)(nil))
	fileHeaderSliceType = reflect.TypeOf([]*multipart.FileHeader(nil))
)

func setFileField(fv reflect.Value, headers []*multipart.FileHeader) error {
	switch fv.Type() {
	case fileHeaderType:
		fv.Set(reflect.ValueOf(headers[0]))
	case fileHeaderSliceType:
		fv.Set(reflect.ValueOf(headers))
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedFieldType, fv.Type())
	}
	return nil
}

// IsUnsupportedContentType reports whether err stems from a request body
// the form binder cannot parse.
func IsUnsupportedContentType(err error) bool {
	return errors.Is(err, ErrUnsupportedContentType)
}
