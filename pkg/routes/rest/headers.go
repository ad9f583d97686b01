package rest

import (
	"strconv"

	"github.com/labstack/echo/v4"
)

// ApplicationName prefixes alert keys and alert header names.
const ApplicationName = "babyshopApp"

const (
	HeaderAlert  = "X-" + ApplicationName + "-alert"
	HeaderParams = "X-" + ApplicationName + "-params"
)

// SetAlert sets the alert headers read by the admin UI, e.g.
// "babyshopApp.produit.created" with the id as parameter.
func SetAlert(c echo.Context, entityName, action string, id int64) {
	header := c.Response().Header()
	header.Set(HeaderAlert, ApplicationName+"."+entityName+"."+action)
	header.Set(HeaderParams, strconv.FormatInt(id, 10))
}
