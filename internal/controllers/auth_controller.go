package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	logrus "github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"sofer_terminal/internal/middleware"
)

// Login authenticates the driver against the locally synced employee row.
// The password hash is set on-device (see SetCredential); the authority
// never transmits credentials, so login works fully offline.
func Login(c *gin.Context) {
	var body struct {
		Identifier string `json:"identifier" binding:"required"`
		Password   string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	emp, err := Store.EmployeeByName(body.Identifier)
	if err != nil {
		logrus.WithError(err).Error("Login: employee lookup failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "database error"})
		return
	}
	if emp == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unknown driver or wrong password"})
		return
	}
	if emp.Password == "" {
		c.JSON(http.StatusForbidden, gin.H{"error": "no local credential set for this driver"})
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(emp.Password), []byte(body.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unknown driver or wrong password"})
		return
	}

	token, err := middleware.GenerateToken(emp.ID, emp.Role)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not generate token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"employee": gin.H{
			"id":          emp.ID,
			"name":        emp.Name,
			"role":        emp.Role,
			"operator_id": emp.OperatorID,
		},
	})
}

// SetCredential provisions the local password for an employee. Only an
// unprovisioned employee can be set this way; changing an existing
// credential is an operator task outside the terminal.
func SetCredential(c *gin.Context) {
	var body struct {
		EmployeeID int    `json:"employee_id" binding:"required"`
		Password   string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	emp, err := Store.EmployeeByID(body.EmployeeID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "database error"})
		return
	}
	if emp == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "employee not found"})
		return
	}
	if emp.Password != "" {
		c.JSON(http.StatusConflict, gin.H{"error": "credential already provisioned"})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(body.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not hash password"})
		return
	}
	if err := Store.SetEmployeePassword(emp.ID, string(hash)); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not store credential"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "credential set"})
}
