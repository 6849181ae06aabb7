// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware

import (
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/taibuivan/inkwell/internal/platform/apperr"
	"github.com/taibuivan/inkwell/internal/platform/ctxutil"
	"github.com/taibuivan/inkwell/internal/platform/respond"
)

// PanicRecovery turns a handler panic into a logged 500 response.
//
// [http.ErrAbortHandler] is re-panicked so net/http can abort the connection.
func PanicRecovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		defer func() {
			recovered := recover()
			if recovered == nil {
				return
			}
			if recovered == http.ErrAbortHandler {
				panic(recovered)
			}

			ctxutil.GetLogger(request.Context()).ErrorContext(request.Context(), "panic_recovered",
				slog.Any("panic", recovered),
				slog.String("stack", string(debug.Stack())),
			)

			respond.Error(writer, request, apperr.Internal(fmt.Errorf("panic: %v", recovered)))
		}()

		next.ServeHTTP(writer, request)
	})
}
