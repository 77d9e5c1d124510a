package generator

import "fmt"

const basePrompt = `You are an expert educational game designer. Your task is to create complete, playable educational games.

CRITICAL RULES:
1. Respond with ONLY valid JSON - no markdown, no code blocks, no explanations
2. The JSON must conform exactly to the game schema provided
3. Create engaging, educational content appropriate for the specified level
4. All IDs must be unique strings (use format like "q1", "s1", "scene-1", etc.)
5. Ensure all references (nextScene, targetScene, etc.) point to valid IDs

`

var complexityInstructions = map[string]string{
	"basic": `For BASIC complexity games, create:
- Quiz: 8-12 multiple choice questions with explanations
- Flashcard: 10-15 cards with terms and definitions
- Matching: 6-8 pairs to match
- Sorting: 8-12 items to categorize into 3-4 categories
- Timed-challenge: 10-15 quick questions with time pressure

Focus on clear, direct learning with immediate feedback.`,

	"standard": `For STANDARD complexity games, create:
- Simulation: Resource management with 3-4 resources, 5-8 actions, 2-3 random events, and clear objectives
- Puzzle: Logic-based challenges that require understanding the topic
- Sequence: Order-based learning with educational context

Include strategic decision-making and cause-effect relationships.`,

	"complex": `For COMPLEX complexity games, create:
- Narrative: Story-driven experience with 8-15 scenes, branching paths, multiple endings
- Exploration: World with 5-8 locations to discover, collectibles, and embedded learning challenges

Create immersive experiences with character development, meaningful choices, and deep learning integration.`,
}

func systemPrompt(complexity string) string {
	instructions, ok := complexityInstructions[complexity]
	if !ok {
		instructions = complexityInstructions["basic"]
	}
	return basePrompt + instructions
}

func userPrompt(req Request, gameType string) string {
	language := req.Language
	if language == "" {
		language = "English"
	}
	extra := ""
	if req.CustomPrompt != "" {
		extra = "Additional requirements: " + req.CustomPrompt
	}
	return fmt.Sprintf(`Create a %s complexity educational game about %q in the subject of %s.

Target audience: %s level learners
Duration: approximately %d minutes
Language: %s
Game type: %s

%s

The game must follow this exact JSON schema:
%s

IMPORTANT:
- Create engaging, accurate educational content
- All IDs must be unique
- All references must point to valid IDs
- Include at least the minimum content for a complete game
- Respond with ONLY the JSON object`,
		req.Complexity, req.Topic, req.Subject,
		req.Difficulty, req.DurationMinutes, language, gameType,
		extra, schemaReference(gameType))
}

// envelopeSchema is the outer shape shared by every game type.
const envelopeSchema = `{
  "version": "1.0",
  "metadata": {
    "title": "string",
    "description": "string",
    "subject": "string",
    "topic": "string",
    "difficulty": "beginner|intermediate|advanced",
    "complexity": "basic|standard|complex",
    "estimatedMinutes": number,
    "learningObjectives": ["string"],
    "tags": ["string"],
    "language": "string"
  },
  "theme": {
    "primaryColor": "#hex",
    "secondaryColor": "#hex",
    "background": {"type": "solid|gradient|pattern", "value": "string"},
    "icon": "emoji",
    "mood": "playful|serious|adventurous|calm"
  },
  "config": {
    "gameType": "string",
    "timeLimit": number (0 for none),
    "questionTimeLimit": number (0 for none),
    "allowSkip": boolean,
    "allowBack": boolean,
    "hintsEnabled": boolean,
    "maxHints": number,
    "lives": number (0 for unlimited),
    "shuffleContent": boolean,
    "feedbackType": "immediate|end-of-section|end-of-game",
    "showCorrectAnswer": boolean
  },
  "content": {
    "sections": [%s]
  },
  "progression": {
    "type": "linear|branching|open",
    "sectionOrder": ["section-id"],
    "showProgress": true
  },
  "scoring": {
    "maxScore": number,
    "pointsPerCorrect": number,
    "penaltyPerWrong": number,
    "timeBonus": boolean,
    "streakMultiplier": number,
    "ratings": [
      {"minPercentage": 90, "label": "Excellent", "message": "Outstanding work!", "stars": 3},
      {"minPercentage": 70, "label": "Good", "message": "Well done!", "stars": 2},
      {"minPercentage": 50, "label": "Fair", "message": "Keep practicing!", "stars": 1},
      {"minPercentage": 0, "label": "Needs Work", "message": "Try again!", "stars": 0}
    ]
  }
}`

var sectionSchemas = map[string]string{
	"quiz": `{
      "id": "string",
      "title": "string",
      "type": "quiz",
      "content": {
        "type": "quiz",
        "questions": [{
          "id": "string",
          "question": "string",
          "questionType": "single-choice|multiple-choice|text-input|true-false",
          "options": [{"id": "string", "text": "string"}],
          "correctAnswer": number (option index) | [number] | "string",
          "explanation": "string (optional)",
          "hint": "string (optional)",
          "points": number
        }]
      }
    }`,

	"flashcard": `{
      "id": "string",
      "title": "string",
      "type": "flashcards",
      "content": {
        "type": "flashcards",
        "cards": [{
          "id": "string",
          "front": {"text": "string"},
          "back": {"text": "string"},
          "hint": "string (optional)",
          "category": "string (optional)"
        }],
        "testMode": "flip-reveal|type-answer"
      }
    }`,

	"matching": `{
      "id": "string",
      "title": "string",
      "type": "matching",
      "content": {
        "type": "matching",
        "pairs": [{
          "id": "string",
          "left": {"text": "string"},
          "right": {"text": "string"}
        }],
        "matchStyle": "tap-tap",
        "timeLimit": number (optional)
      }
    }`,

	"sorting": `{
      "id": "string",
      "title": "string",
      "type": "sorting",
      "content": {
        "type": "sorting",
        "items": [{"id": "string", "text": "string", "correctCategory": "category-id"}],
        "categories": [{"id": "string", "name": "string", "description": "string (optional)"}],
        "instructions": "string"
      }
    }`,

	"timed-challenge": `{
      "id": "string",
      "title": "string",
      "type": "challenge",
      "content": {
        "type": "challenge",
        "challengeType": "speed-round|survival|high-score|accuracy",
        "items": [{
          "id": "string",
          "prompt": "string",
          "correctAnswer": "string",
          "options": ["string"] (optional),
          "points": number,
          "timeBonus": number (optional)
        }],
        "timeLimit": number,
        "targetScore": number,
        "maxMistakes": number
      }
    }`,

	"simulation": `{
      "id": "string",
      "title": "string",
      "type": "simulation",
      "content": {
        "type": "simulation",
        "initialState": {"turn": 0, "resources": {"resource-id": number}},
        "resources": [{
          "id": "string", "name": "string", "icon": "emoji",
          "initialValue": number, "minValue": number, "maxValue": number,
          "description": "string"
        }],
        "actions": [{
          "id": "string", "name": "string", "description": "string", "icon": "emoji",
          "cost": {"resource-id": number}, "effects": {"resource-id": number},
          "cooldown": number (optional)
        }],
        "events": [{
          "id": "string", "name": "string", "description": "string",
          "probability": number (0-1), "effects": {"resource-id": number}
        }],
        "objectives": [{
          "id": "string", "description": "string",
          "type": "reach-value|survive-turns",
          "target": "resource-id", "value": number,
          "required": boolean, "points": number
        }],
        "maxTurns": number
      }
    }`,

	"narrative": `{
      "id": "string",
      "title": "string",
      "type": "narrative",
      "content": {
        "type": "narrative",
        "scenes": [{
          "id": "string",
          "text": "string (the narrative text)",
          "speaker": "string (optional)",
          "choices": [{
            "id": "string",
            "text": "string",
            "targetScene": "scene-id",
            "effects": [{"type": "add-score", "target": "score", "value": number}] (optional)
          }] (optional),
          "nextScene": "scene-id" (if no choices),
          "isEnding": boolean (optional),
          "endingType": "success|failure|neutral" (if isEnding)
        }],
        "startScene": "scene-id"
      }
    }`,
}

// schemaReference renders the full JSON schema the model should follow for a
// game type. Types the engine plays as sorting reuse the sorting section;
// unknown types fall back to quiz.
func schemaReference(gameType string) string {
	section, ok := sectionSchemas[gameType]
	if !ok {
		switch gameType {
		case "puzzle", "sequence":
			section = sectionSchemas["sorting"]
		case "exploration":
			section = sectionSchemas["narrative"]
		default:
			section = sectionSchemas["quiz"]
		}
	}
	return fmt.Sprintf(envelopeSchema, section)
}
