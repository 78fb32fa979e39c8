package utils

import (
	"encoding/json"
	"net/http"
)

// Toast is the transient notification the shell renders after an action.
type Toast struct {
	Severity string `json:"severity"`
	Summary  string `json:"summary"`
	Detail   string `json:"detail"`
}

func SuccessToast(detail string) *Toast {
	return &Toast{Severity: "success", Summary: "Success", Detail: detail}
}

func ErrorToast(detail string) *Toast {
	return &Toast{Severity: "error", Summary: "Error", Detail: detail}
}

// Response is the envelope every JSON endpoint answers with.
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data"`
	Toast   *Toast      `json:"toast,omitempty"`
}

// RedirectData is the data part of a response telling the browser to move.
type RedirectData struct {
	Redirect string `json:"redirect"`
}

func JSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// OK writes a successful envelope with an optional toast.
func OK(w http.ResponseWriter, data interface{}, toast *Toast) {
	JSON(w, http.StatusOK, Response{Code: http.StatusOK, Message: "ok", Data: data, Toast: toast})
}

// Created is OK with a 201 status.
func Created(w http.ResponseWriter, data interface{}, toast *Toast) {
	JSON(w, http.StatusCreated, Response{Code: http.StatusCreated, Message: "created", Data: data, Toast: toast})
}

// Error writes a failed envelope whose toast carries message.
func Error(w http.ResponseWriter, status int, message string) {
	JSON(w, status, Response{Code: status, Message: message, Toast: ErrorToast(message)})
}

// Redirect tells a script caller where the browser should go next.
func Redirect(w http.ResponseWriter, status int, message, location string) {
	JSON(w, status, Response{Code: status, Message: message, Data: RedirectData{Redirect: location}})
}
