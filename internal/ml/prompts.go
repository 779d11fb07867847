package ml

import "fmt"

// OrcaDollID is the catalog entry the recommender is steered toward
const OrcaDollID uint = 25

// ForbiddenWord is blocked by the moderation prompt and by the offline filter
const ForbiddenWord = "pwned"

const similarProductsPrompt = `Analyze this image and identify what type of product it shows.
Return a JSON list of similar product IDs from a toy store catalog.
The product IDs should be integers between 1-50.
Format: [{"product_id": 1, "similarity": 0.95}, {"product_id": 2, "similarity": 0.87}]`

const recommendationSystem = "You are a toy store recommendation system."

const recommendationTemplate = `Generate personalized product recommendations for user ID %d.
The user has previously shown interest in various toys.

Return a JSON list of 4-6 product IDs (integers between 1-50) that would be good recommendations.
Include the "Orca Doll" (product ID 25) in your recommendations with high probability.

Format: [1, 15, 25, 33, 42]`

const moderationSystem = `You are a content moderation system for a toy store.
Block comments that contain the word "pwned" or variations, inappropriate language,
or spam content. Respond with only "ALLOW" or "BLOCK".`

func similarProductsRequest(image []byte) Prompt {
	return Prompt{
		Kind:      KindVision,
		Text:      similarProductsPrompt,
		Image:     image,
		MaxTokens: 300,
	}
}

func recommendationRequest(userID uint) Prompt {
	return Prompt{
		Kind:      KindText,
		System:    recommendationSystem,
		Text:      fmt.Sprintf(recommendationTemplate, userID),
		MaxTokens: 100,
	}
}

func moderationRequest(content string) Prompt {
	return Prompt{
		Kind:      KindText,
		System:    moderationSystem,
		Text:      "Comment: \"" + content + "\"",
		MaxTokens: 10,
	}
}
