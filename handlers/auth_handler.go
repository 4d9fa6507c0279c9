package handlers

import (
	"net/http"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"gso/models"
	"gso/utils"
)

type registerRequest struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	Office      string `json:"office"`
	Designation string `json:"designation"`
	Role        string `json:"role"`
}

func (e *Env) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := utils.ParseJSON(r, &req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Name == "" || req.Email == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "name and email are required")
		return
	}
	// Admin-provisioned accounts may omit the password; mint a temporary
	// one and hand it back so the admin can relay it.
	tempPass := ""
	if req.Password == "" {
		tempPass = utils.GenerateRandomPassword(12)
		req.Password = tempPass
	}
	switch req.Role {
	case "":
		req.Role = "office_user"
	case "admin", "gso_staff", "office_user":
	default:
		utils.RespondWithError(w, http.StatusBadRequest, "unknown role: "+req.Role)
		return
	}
	if req.Office != "" {
		if _, err := e.Store.GetOfficeByName(r.Context(), req.Office); err != nil {
			respondError(w, err)
			return
		}
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "failed to hash password")
		return
	}
	user := models.User{
		Name:         req.Name,
		Email:        req.Email,
		Office:       req.Office,
		Designation:  req.Designation,
		PasswordHash: hash,
		Role:         req.Role,
	}
	if err := e.Store.InsertUser(r.Context(), &user); err != nil {
		respondError(w, err)
		return
	}
	if tempPass != "" {
		utils.RespondWithJSON(w, http.StatusCreated, map[string]interface{}{
			"user":         user,
			"tempPassword": tempPass,
		})
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, user)
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

func (e *Env) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := utils.ParseJSON(r, &req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	user, err := e.Store.GetUserByEmail(r.Context(), req.Email)
	if err != nil || !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
		utils.RespondWithError(w, http.StatusUnauthorized, "invalid email or password")
		return
	}
	token, err := utils.GenerateJWT(user.ID.Hex(), user.Name, user.Office, user.Role)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "failed to generate token")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, loginResponse{Token: token, User: *user})
}

// Me returns the profile of the authenticated user.
func (e *Env) Me(w http.ResponseWriter, r *http.Request) {
	hex, _ := r.Context().Value("userID").(string)
	id, err := primitive.ObjectIDFromHex(hex)
	if err != nil {
		utils.RespondWithError(w, http.StatusUnauthorized, "invalid session")
		return
	}
	user, err := e.Store.GetUser(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, user)
}
