package controllers_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/restohub/restopos/controllers"
	"github.com/restohub/restopos/middlewares"
	"github.com/restohub/restopos/models"
	"github.com/restohub/restopos/utils"
)

func setupTestDBForUsers(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Restaurant{}, &models.User{}))
	return db
}

func setupUserRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	ctrl := controllers.NewUserController(db)
	r.POST("/register", ctrl.Register)
	r.POST("/login", ctrl.Login)
	r.GET("/profile", middlewares.AuthMiddleware(models.RoleAdmin, models.RoleManager, models.RoleStaff), ctrl.GetProfile)
	r.GET("/users", middlewares.AuthMiddleware(models.RoleAdmin), ctrl.GetAllUsers)
	return r
}

func TestRegisterLoginAndProfile(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForUsers(t)
	r := setupUserRouter(db)

	w := doJSON(t, r, http.MethodPost, "/register", map[string]interface{}{
		"name":            "Admin",
		"email":           "admin@mezban.test",
		"password":        "supersecret",
		"restaurant_name": "Mezban",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	// Registration creates the tenant and its admin together.
	var restaurantCount, userCount int64
	db.Model(&models.Restaurant{}).Count(&restaurantCount)
	db.Model(&models.User{}).Count(&userCount)
	assert.EqualValues(t, 1, restaurantCount)
	assert.EqualValues(t, 1, userCount)

	w = doJSON(t, r, http.MethodPost, "/login", map[string]interface{}{
		"email":    "admin@mezban.test",
		"password": "supersecret",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Data struct {
			Token string `json:"token"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Data.Token)

	req := httptest.NewRequest(http.MethodGet, "/profile", nil)
	req.Header.Set("Authorization", "Bearer "+resp.Data.Token)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForUsers(t)
	r := setupUserRouter(db)

	w := doJSON(t, r, http.MethodPost, "/register", map[string]interface{}{
		"name":            "Admin",
		"email":           "admin@mezban.test",
		"password":        "supersecret",
		"restaurant_name": "Mezban",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, r, http.MethodPost, "/login", map[string]interface{}{
		"email":    "admin@mezban.test",
		"password": "wrong-password",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRoleGateBlocksStaff(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForUsers(t)
	r := setupUserRouter(db)

	restaurant := models.Restaurant{Name: "Mezban"}
	require.NoError(t, db.Create(&restaurant).Error)

	token, err := utils.GenerateToken(42, restaurant.ID, models.RoleStaff)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/users", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestAuthRejectsMissingToken(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForUsers(t)
	r := setupUserRouter(db)

	req := httptest.NewRequest(http.MethodGet, "/profile", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
