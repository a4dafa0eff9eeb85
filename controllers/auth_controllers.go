package controllers

import (
	"github.com/chabbasaad/4CITE-sub001/dto"
	"github.com/chabbasaad/4CITE-sub001/response"
	"github.com/chabbasaad/4CITE-sub001/services"
	"github.com/chabbasaad/4CITE-sub001/validator"

	"github.com/gin-gonic/gin"
)

type AuthController struct {
	auth *services.AuthService
}

func NewAuthController(auth *services.AuthService) AuthController {
	return AuthController{auth: auth}
}

// Register POST /auth/register: tạo tài khoản role user.
func (ctrl AuthController) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Dữ liệu gửi lên không đọc được")
		return
	}
	if err := validator.ValidateRegister(req); err != nil {
		response.FromError(c, err)
		return
	}

	user, token, err := ctrl.auth.Register(req)
	if err != nil {
		response.FromError(c, err)
		return
	}

	services.SetTokenCookies(c, token)
	response.Created(c, dto.LoginResponse{Token: token, User: dto.ToUserResponse(user)})
}

// Login POST /auth/login
func (ctrl AuthController) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Thiếu email hoặc mật khẩu")
		return
	}

	user, token, err := ctrl.auth.Login(req.Email, req.Password)
	if err != nil {
		response.FromError(c, err)
		return
	}

	services.SetTokenCookies(c, token)
	response.Success(c, dto.LoginResponse{Token: token, User: dto.ToUserResponse(user)})
}

// LoginWithGoogle POST /auth/google: đăng nhập bằng Google ID token.
func (ctrl AuthController) LoginWithGoogle(c *gin.Context) {
	var req dto.GoogleAuthRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Thiếu tokenId")
		return
	}

	user, token, err := ctrl.auth.LoginWithGoogle(c.Request.Context(), req.TokenID)
	if err != nil {
		response.FromError(c, err)
		return
	}

	services.SetTokenCookies(c, token)
	response.Success(c, dto.LoginResponse{Token: token, User: dto.ToUserResponse(user)})
}

// Logout POST /auth/logout: chỉ xóa cookie, token Bearer FE tự bỏ.
func (ctrl AuthController) Logout(c *gin.Context) {
	services.ClearTokenCookies(c)
	response.SuccessWithMessage(c, "Đăng xuất thành công", nil)
}
