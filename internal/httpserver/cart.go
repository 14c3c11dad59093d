package httpserver

import (
	"errors"
	"net/http"
	"strconv"

	"storefront/internal/catalog"
	"storefront/internal/domain"
	cartsvc "storefront/internal/service/cart"
	"github.com/gin-gonic/gin"
)

func addToCartHandler(svc cartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		productID, ok := productIDParam(c)
		if !ok {
			return
		}
		u, err := svc.Add(c.Request.Context(), currentUserID(c), productID)
		if err != nil {
			cartError(c, err, "could not add to cart")
			return
		}
		c.JSON(http.StatusCreated, gin.H{"msg": "product added to cart", "user": u})
	}
}

func getCartHandler(svc cartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		lines, err := svc.Get(c.Request.Context(), currentUserID(c))
		if err != nil {
			cartError(c, err, "could not fetch the cart")
			return
		}
		if lines == nil {
			lines = []domain.CartLine{}
		}
		c.JSON(http.StatusOK, gin.H{"msg": "cart products down below", "cart": lines})
	}
}

func incrementHandler(svc cartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		productID, ok := productIDParam(c)
		if !ok {
			return
		}
		u, err := svc.Increment(c.Request.Context(), currentUserID(c), productID)
		if err != nil {
			cartError(c, err, "could not update the cart")
			return
		}
		c.JSON(http.StatusOK, gin.H{"msg": "cart updated", "user": u})
	}
}

func decrementHandler(svc cartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		productID, ok := productIDParam(c)
		if !ok {
			return
		}
		u, err := svc.Decrement(c.Request.Context(), currentUserID(c), productID)
		if err != nil {
			cartError(c, err, "could not update the cart")
			return
		}
		c.JSON(http.StatusOK, gin.H{"msg": "cart updated", "user": u})
	}
}

func placeOrderHandler(svc cartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		u, err := svc.PlaceOrder(c.Request.Context(), currentUserID(c))
		if err != nil {
			if errors.Is(err, cartsvc.ErrEmptyCart) {
				c.JSON(http.StatusBadRequest, gin.H{"msg": "cart is empty"})
				return
			}
			cartError(c, err, "could not place order")
			return
		}
		c.JSON(http.StatusCreated, gin.H{"msg": "order placed", "user": u})
	}
}

func historyHandler(svc cartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		orders, err := svc.History(c.Request.Context(), currentUserID(c))
		if err != nil {
			cartError(c, err, "could not fetch orders")
			return
		}
		if orders == nil {
			orders = []domain.Order{}
		}
		c.JSON(http.StatusOK, gin.H{"msg": "order history down below", "orders": orders})
	}
}

func orderHandler(svc cartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		position, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid order position"})
			return
		}
		order, err := svc.OrderByPosition(c.Request.Context(), currentUserID(c), position)
		if err != nil {
			if errors.Is(err, cartsvc.ErrOrderNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"msg": "order does not exist"})
				return
			}
			cartError(c, err, "could not fetch order")
			return
		}
		c.JSON(http.StatusOK, gin.H{"msg": "order down below", "order": order})
	}
}

func productIDParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid product id"})
		return 0, false
	}
	return id, true
}

// cartError maps core failures onto the response taxonomy: a vanished
// user means the token no longer names anyone, a missing line is a 404,
// catalog trouble is a bad gateway, anything else stays generic.
func cartError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusUnauthorized, gin.H{"msg": "login again"})
	case errors.Is(err, cartsvc.ErrLineNotFound):
		c.JSON(http.StatusNotFound, gin.H{"msg": "product not in cart"})
	case errors.Is(err, catalog.ErrUpstream):
		c.JSON(http.StatusBadGateway, gin.H{"msg": "could not fetch data"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"msg": fallback})
	}
}
