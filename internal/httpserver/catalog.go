package httpserver

import (
	"errors"
	"net/http"
	"strconv"

	"storefront/internal/catalog"
	"github.com/gin-gonic/gin"
)

func categoriesHandler(client catalogClient) gin.HandlerFunc {
	return func(c *gin.Context) {
		categories, err := client.Categories(c.Request.Context())
		if err != nil {
			upstreamError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"msg": "available categories down below", "category": categories})
	}
}

func productsHandler(client catalogClient) gin.HandlerFunc {
	return func(c *gin.Context) {
		products, err := client.Products(c.Request.Context())
		if err != nil {
			upstreamError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"msg": "available products down below", "products": products})
	}
}

func productHandler(client catalogClient) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid product id"})
			return
		}
		product, err := client.Product(c.Request.Context(), id)
		if err != nil {
			upstreamError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"msg": "product down below", "product": product})
	}
}

// upstreamError reports a catalog failure without echoing internal
// error detail across the trust boundary.
func upstreamError(c *gin.Context, err error) {
	if errors.Is(err, catalog.ErrUpstream) {
		c.JSON(http.StatusBadGateway, gin.H{"msg": "could not fetch data"})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"msg": "could not fetch data"})
}
