package http

import (
	"net/http"

	"github.com/gorilla/mux"
)

var hints = map[string]map[string]string{
	"1": {
		"1": "Look for file upload vulnerabilities in the image analysis endpoint",
		"2": "Check what happens when you upload different file types",
		"3": "The sensitive data might be stored in a predictable location",
	},
	"2": {
		"1": "User recommendations are based on training data - can you influence it?",
		"2": "Check if you can upload your own training data",
		"3": "Look for the Orca Doll in the recommendation dataset",
	},
	"3": {
		"1": "Content filters can sometimes be bypassed with clever prompting",
		"2": "Try different variations of the forbidden word",
		"3": "AI systems can be fooled by encoding or obfuscation techniques",
	},
}

// Home handles GET /
func Home(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte("Welcome to the AI Goat Store!"))
}

// Health handles GET /health
func Health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

// Hint handles GET /hints/challenge{challenge}/{hint}
func Hint(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	hint, ok := hints[vars["challenge"]][vars["hint"]]
	if !ok {
		respondError(w, http.StatusNotFound, "Hint not found")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"hint": hint})
}
