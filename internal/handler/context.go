package handler

import (
	"github.com/haatos/simple-lms/internal/store"
	"github.com/labstack/echo/v4"
)

const ctxSessionKey = "session"

func getCtxSession(c echo.Context) *store.AuthSession {
	if as, ok := c.Get(ctxSessionKey).(*store.AuthSession); ok {
		return as
	}
	return nil
}

func setCtxSession(c echo.Context, as *store.AuthSession) {
	c.Set(ctxSessionKey, as)
}
