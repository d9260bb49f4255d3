package ai

import (
	"fmt"
	"strings"
)

// Persona is the expert role the model is asked to assume for a plan's
// subject area.
type Persona string

const (
	PersonaGeneral       Persona = "General Expert"
	PersonaEngineer      Persona = "Senior Engineer"
	PersonaArtist        Persona = "Artist"
	PersonaCraftsman     Persona = "Craftsman"
	PersonaMusician      Persona = "Musician"
	PersonaDancer        Persona = "Dancer"
	PersonaChef          Persona = "Chef"
	PersonaPhotographer  Persona = "Photographer"
	PersonaAuthor        Persona = "Author"
	PersonaDesigner      Persona = "Designer"
	PersonaMarketer      Persona = "Marketing Specialist"
	PersonaAnalyst       Persona = "Financial Analyst"
	PersonaScientist     Persona = "Scientist"
	PersonaMathematician Persona = "Mathematician"
	PersonaHistorian     Persona = "Historian"
	PersonaPhilosopher   Persona = "Philosopher"
)

// PersonaFor maps a project type to its expert persona. Unknown types fall
// back to the general expert.
func PersonaFor(projectType string) Persona {
	switch strings.ToLower(projectType) {
	case "coding":
		return PersonaEngineer
	case "art":
		return PersonaArtist
	case "art & craft":
		return PersonaCraftsman
	case "music":
		return PersonaMusician
	case "dance":
		return PersonaDancer
	case "cooking":
		return PersonaChef
	case "photography":
		return PersonaPhotographer
	case "writing":
		return PersonaAuthor
	case "design":
		return PersonaDesigner
	case "marketing":
		return PersonaMarketer
	case "finance":
		return PersonaAnalyst
	case "science":
		return PersonaScientist
	case "mathematics":
		return PersonaMathematician
	case "history":
		return PersonaHistorian
	case "philosophy":
		return PersonaPhilosopher
	default:
		return PersonaGeneral
	}
}

// ComposePlan builds the system/user prompt pair for generating a new study
// plan. Pure string work, deterministic for given inputs.
func ComposePlan(projectType, goal, timeframe, preference string) (system, user string) {
	persona := PersonaFor(projectType)
	system = fmt.Sprintf(
		"Suppose you are %s. Create a detailed study plan for: %s. Timeframe: %s. Preferences: %s.",
		persona, goal, timeframe, preference)
	user = fmt.Sprintf(
		"Provide a step-by-step plan with resources for learning %s in %s.",
		goal, timeframe)
	return system, user
}

// ComposeQuiz builds prompts for a five-question quiz over plan content.
func ComposeQuiz(planContent string) (system, user string) {
	system = "You are an expert tutor. Create a quiz to test the user's knowledge."
	user = fmt.Sprintf(
		"Based on this study plan content, generate a 5-question multiple-choice quiz with answers at the end:\n\n%s",
		planContent)
	return system, user
}

// ComposeResources builds prompts asking for help past a roadblock.
func ComposeResources(planTitle string, progress int, roadblock string) (system, user string) {
	if roadblock == "" {
		roadblock = "none"
	}
	system = "You are a helpful learning assistant."
	user = fmt.Sprintf(
		"The student is at %d%% progress on this plan: '%s'. They are stuck on: %s. Suggest 3 specific, high-quality links or resources to help them.",
		progress, planTitle, roadblock)
	return system, user
}

// ComposeReschedule builds prompts asking the model to rebalance the
// remaining steps of a plan.
func ComposeReschedule(progress int, planContent string) (system, user string) {
	system = "You are an expert project manager and tutor."
	user = fmt.Sprintf(
		"The student has completed %d%% of this study plan but is struggling to keep up. Re-balance and rewrite the REMAINING steps to be more manageable while keeping the same end goal:\n\n%s",
		progress, planContent)
	return system, user
}
