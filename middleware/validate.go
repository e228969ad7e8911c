package middleware

import (
	"bytes"
	"io"
	"net/http"
	"regexp"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/valyala/fastjson"

	"github.com/toninews/logbook-back/apperrors"
	"github.com/toninews/logbook-back/response"
)

// maxBodyBytes caps create-log request bodies at 2 MB
const maxBodyBytes = 2 << 20

var idPattern = regexp.MustCompile(`^[a-fA-F0-9]{24}$`)

var bodyParsers fastjson.ParserPool

// ValidateGetList checks list query parameters before the use case runs
func ValidateGetList(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if page := r.URL.Query().Get("page"); page != "" {
			parsed, err := strconv.Atoi(page)
			if err != nil || parsed < 1 {
				response.Fail(w, apperrors.New(http.StatusBadRequest, apperrors.CodeInvalidQuery,
					"The 'page' parameter must be a positive integer."))
				return
			}
		}

		next.ServeHTTP(w, r)
	})
}

// ValidateCreateLog checks the create body shape: title and content must be
// non-empty strings and tags, when present, an array of strings. The body is
// inspected as raw JSON so wrong field types report VALIDATION_ERROR rather
// than a generic decode failure, then restored for the controller.
func ValidateCreateLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
		if err != nil {
			response.Fail(w, apperrors.New(http.StatusBadRequest, apperrors.CodeValidationError,
				"Request body is unreadable or too large."))
			return
		}

		parser := bodyParsers.Get()
		defer bodyParsers.Put(parser)

		v, err := parser.ParseBytes(body)
		if err != nil {
			response.Fail(w, apperrors.New(http.StatusBadRequest, apperrors.CodeValidationError,
				"Request body must be valid JSON."))
			return
		}

		if appErr := checkCreateBody(v); appErr != nil {
			response.Fail(w, appErr)
			return
		}

		r.Body = io.NopCloser(bytes.NewReader(body))
		next.ServeHTTP(w, r)
	})
}

func checkCreateBody(v *fastjson.Value) *apperrors.Error {
	title := v.Get("title")
	if title == nil || title.Type() != fastjson.TypeString ||
		strings.TrimSpace(string(title.GetStringBytes())) == "" {
		return apperrors.New(http.StatusBadRequest, apperrors.CodeValidationError, "Title is required.")
	}

	content := v.Get("content")
	if content == nil || content.Type() != fastjson.TypeString ||
		strings.TrimSpace(string(content.GetStringBytes())) == "" {
		return apperrors.New(http.StatusBadRequest, apperrors.CodeValidationError, "Content is required.")
	}

	if tags := v.Get("tags"); tags != nil {
		if tags.Type() != fastjson.TypeArray {
			return apperrors.New(http.StatusBadRequest, apperrors.CodeValidationError, "Tags must be an array.")
		}
		for _, item := range tags.GetArray() {
			if item.Type() != fastjson.TypeString {
				return apperrors.New(http.StatusBadRequest, apperrors.CodeValidationError,
					"All tags items must be strings.")
			}
		}
	}

	return nil
}

// ValidateDeleteID checks that the path id has the 24-hex identifier shape
func ValidateDeleteID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		if !idPattern.MatchString(id) {
			response.Fail(w, apperrors.New(http.StatusBadRequest, apperrors.CodeInvalidID, "Invalid id."))
			return
		}

		next.ServeHTTP(w, r)
	})
}
