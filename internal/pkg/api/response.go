package api

import (
	"encoding/json"
	"net/http"

	"github.com/mukesh-on-github/Zyrokart/internal/pkg/apperr"
)

// Response 統一回應格式
type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
	Count   *int   `json:"count,omitempty"`
	Total   *int64 `json:"total,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, body Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func SuccessJSON(w http.ResponseWriter, message string, data any) {
	writeJSON(w, http.StatusOK, Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

func CreatedJSON(w http.ResponseWriter, message string, data any) {
	writeJSON(w, http.StatusCreated, Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// ListJSON 列表回應, count為本頁筆數, total為過濾後總筆數
func ListJSON(w http.ResponseWriter, count int, total int64, data any) {
	writeJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    data,
		Count:   &count,
		Total:   &total,
	})
}

func ErrorJSON(w http.ResponseWriter, message string, err error) {
	code := apperr.CodeOf(err)
	body := Response{
		Success: false,
		Message: message,
	}
	if err != nil {
		body.Error = err.Error()
	}
	writeJSON(w, code.HTTPStatus(), body)
}
