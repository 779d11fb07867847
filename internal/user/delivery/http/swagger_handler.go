package http

// Login godoc
// @Summary User login
// @Description Exchange demo credentials for a one hour token
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body object{username=string,password=string} true "Login credentials"
// @Success 200 {object} command.LoginResponse
// @Failure 401 {object} MessageResponse
// @Router /api/login [post]
func (h *UserHandler) LoginDoc() {}

// GetRecommendations godoc
// @Summary Personal recommendations
// @Description Asks the model for up to four products and stores them on the user
// @Tags Users
// @Security BearerAuth
// @Produce json
// @Success 200 {array} object
// @Failure 403 {object} MessageResponse
// @Failure 404 {object} MessageResponse
// @Failure 500 {object} object{error=string}
// @Router /api/recommendations [get]
func (h *UserHandler) GetRecommendationsDoc() {}

// GetCart godoc
// @Summary Cart contents
// @Tags Users
// @Security BearerAuth
// @Produce json
// @Success 200 {array} object
// @Failure 403 {object} MessageResponse
// @Failure 404 {object} MessageResponse
// @Router /api/cart [get]
func (h *UserHandler) GetCartDoc() {}
