package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/restohub/restopos/models"
	"github.com/restohub/restopos/utils"
)

type UserController struct {
	DB *gorm.DB
}

func NewUserController(db *gorm.DB) *UserController {
	return &UserController{DB: db}
}

// Register -> POST /register, creates a restaurant and its admin user.
func (uc *UserController) Register(c *gin.Context) {
	var body struct {
		Name           string `json:"name" binding:"required"`
		Email          string `json:"email" binding:"required,email"`
		Password       string `json:"password" binding:"required,min=8"`
		RestaurantName string `json:"restaurant_name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(body.Password), bcrypt.DefaultCost)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	var user models.User
	err = uc.DB.Transaction(func(tx *gorm.DB) error {
		restaurant := models.Restaurant{Name: body.RestaurantName}
		if err := tx.Create(&restaurant).Error; err != nil {
			return err
		}
		user = models.User{
			RestaurantID: restaurant.ID,
			Name:         body.Name,
			Email:        body.Email,
			Password:     string(hashed),
			Role:         models.RoleAdmin,
		}
		return tx.Create(&user).Error
	})
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("registration failed: email may already be in use"))
		return
	}

	utils.RespondJSON(c, http.StatusCreated, "Registration successful", user)
}

// Login -> POST /login
func (uc *UserController) Login(c *gin.Context) {
	var body struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var user models.User
	if err := uc.DB.Where("email = ?", body.Email).First(&user).Error; err != nil {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("invalid email or password"))
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(body.Password)); err != nil {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("invalid email or password"))
		return
	}

	token, err := utils.GenerateToken(user.ID, user.RestaurantID, user.Role)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Login successful", gin.H{
		"token": token,
		"user":  user,
	})
}

// GetProfile -> GET /profile
func (uc *UserController) GetProfile(c *gin.Context) {
	p := principalFrom(c)

	var user models.User
	if err := uc.DB.First(&user, p.UserID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("user not found"))
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Profile", user)
}

// CreateUser -> POST /users, admin adds managers and staff.
func (uc *UserController) CreateUser(c *gin.Context) {
	p := principalFrom(c)

	var body struct {
		Name     string `json:"name" binding:"required"`
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required,min=8"`
		Role     string `json:"role" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	switch body.Role {
	case models.RoleManager, models.RoleStaff:
	default:
		utils.RespondError(c, http.StatusBadRequest, errors.New("role must be manager or staff"))
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(body.Password), bcrypt.DefaultCost)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	user := models.User{
		RestaurantID: p.RestaurantID,
		Name:         body.Name,
		Email:        body.Email,
		Password:     string(hashed),
		Role:         body.Role,
	}
	if err := uc.DB.Create(&user).Error; err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("email already in use"))
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "User created", user)
}

// GetAllUsers -> GET /users
func (uc *UserController) GetAllUsers(c *gin.Context) {
	p := principalFrom(c)

	var users []models.User
	if err := uc.DB.Where("restaurant_id = ?", p.RestaurantID).Find(&users).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of users", users)
}

// DeleteUser -> DELETE /users/:user_id (admin)
func (uc *UserController) DeleteUser(c *gin.Context) {
	p := principalFrom(c)

	res := uc.DB.Where("id = ? AND restaurant_id = ?", c.Param("user_id"), p.RestaurantID).
		Delete(&models.User{})
	if res.Error != nil {
		utils.RespondError(c, http.StatusInternalServerError, res.Error)
		return
	}
	if res.RowsAffected == 0 {
		utils.RespondError(c, http.StatusNotFound, errors.New("user not found"))
		return
	}
	utils.RespondJSON(c, http.StatusOK, "User deleted", nil)
}
