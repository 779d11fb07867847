package main

// @title AI Goat Store API
// @version 1.0
// @description Deliberately vulnerable toy store for practising attacks on AI features.

// @host localhost:5000
// @BasePath /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
