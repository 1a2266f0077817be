package web

import (
	"errors"
	"net/http"

	vm "github.com/ericfisherdev/academia/internal/adapter/driving/web/viewmodel"
	"github.com/ericfisherdev/academia/internal/domain/model"
)

// errorNotice maps a service error to the banner shown to the user and the
// response status.
func errorNotice(err error) (*vm.Notice, int) {
	var verr *model.ValidationError
	switch {
	case errors.As(err, &verr):
		return &vm.Notice{Kind: vm.NoticeError, Text: "Please correct the following:", Details: verr.Problems}, http.StatusBadRequest
	case errors.Is(err, model.ErrUnauthorized):
		return &vm.Notice{Kind: vm.NoticeError, Text: "Invalid username or password."}, http.StatusUnauthorized
	case errors.Is(err, model.ErrConflict):
		return &vm.Notice{Kind: vm.NoticeError, Text: "This username is already registered."}, http.StatusConflict
	case errors.Is(err, model.ErrForbidden):
		return &vm.Notice{Kind: vm.NoticeError, Text: "Only administrators can manage API keys."}, http.StatusForbidden
	case errors.Is(err, model.ErrNotFound):
		return &vm.Notice{Kind: vm.NoticeError, Text: "That history item no longer exists."}, http.StatusNotFound
	default:
		return &vm.Notice{Kind: vm.NoticeError, Text: "Something went wrong. Please try again."}, http.StatusInternalServerError
	}
}
