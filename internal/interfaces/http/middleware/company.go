package middleware

import (
	"net/http"

	"github.com/fatoora/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CompanyIDKey is the context key under which the company ID is stored
const CompanyIDKey = "company_id"

// CompanyHeader is the header every API request must carry
const CompanyHeader = "X-Company-ID"

// RequireCompany extracts and validates the X-Company-ID header. All
// business routes are scoped to a company, so requests without a valid
// header are rejected before they reach a handler.
func RequireCompany() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := c.GetHeader(CompanyHeader)
		if raw == "" {
			c.AbortWithStatusJSON(http.StatusBadRequest, dto.NewErrorResponseWithRequestID(
				dto.ErrCodeBadRequest,
				"Missing "+CompanyHeader+" header",
				GetRequestID(c),
			))
			return
		}

		companyID, err := uuid.Parse(raw)
		if err != nil || companyID == uuid.Nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, dto.NewErrorResponseWithRequestID(
				dto.ErrCodeBadRequest,
				"Invalid "+CompanyHeader+" header",
				GetRequestID(c),
			))
			return
		}

		c.Set(CompanyIDKey, companyID)
		c.Next()
	}
}

// GetCompanyID returns the company ID set by RequireCompany
func GetCompanyID(c *gin.Context) (uuid.UUID, bool) {
	v, ok := c.Get(CompanyIDKey)
	if !ok {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok
}
