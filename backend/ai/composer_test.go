package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPersonaFor(t *testing.T) {
	assert.Equal(t, PersonaEngineer, PersonaFor("coding"))
	assert.Equal(t, PersonaEngineer, PersonaFor("Coding"))
	assert.Equal(t, PersonaChef, PersonaFor("cooking"))
	assert.Equal(t, PersonaCraftsman, PersonaFor("art & craft"))
	assert.Equal(t, PersonaGeneral, PersonaFor("underwater basket weaving"))
	assert.Equal(t, PersonaGeneral, PersonaFor(""))
}

func TestComposePlan(t *testing.T) {
	system, user := ComposePlan("coding", "learn Rust", "4 weeks", "official docs")

	assert.Contains(t, system, "Senior Engineer")
	assert.Contains(t, system, "learn Rust")
	assert.Contains(t, system, "4 weeks")
	assert.Contains(t, system, "official docs")
	assert.Contains(t, user, "learn Rust")
	assert.Contains(t, user, "4 weeks")
	assert.Contains(t, user, "step-by-step")
}

func TestComposePlanDeterministic(t *testing.T) {
	s1, u1 := ComposePlan("music", "play jazz", "3 months", "videos")
	s2, u2 := ComposePlan("music", "play jazz", "3 months", "videos")
	assert.Equal(t, s1, s2)
	assert.Equal(t, u1, u2)
}

func TestComposeQuiz(t *testing.T) {
	system, user := ComposeQuiz("week 1: ownership")
	assert.Contains(t, system, "expert tutor")
	assert.Contains(t, user, "5-question")
	assert.Contains(t, user, "week 1: ownership")
}

func TestComposeResources(t *testing.T) {
	_, user := ComposeResources("Plan for learn Rust...", 40, "lifetimes")
	assert.Contains(t, user, "40%")
	assert.Contains(t, user, "lifetimes")
	assert.Contains(t, user, "Plan for learn Rust...")

	_, user = ComposeResources("Plan", 0, "")
	assert.Contains(t, user, "stuck on: none")
}

func TestComposeReschedule(t *testing.T) {
	system, user := ComposeReschedule(60, "old content")
	assert.Contains(t, system, "project manager")
	assert.Contains(t, user, "60%")
	assert.Contains(t, user, "REMAINING")
	assert.Contains(t, user, "old content")
}
