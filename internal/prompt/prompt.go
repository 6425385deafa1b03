// Package prompt renders the system instruction sent on every turn: a fixed
// persona plus a context block listing the currently-known slots.
package prompt

import (
	"strings"

	"github.com/eduguide/eduguide/internal/slots"
)

// BaseInstruction is the fixed persona and topical restriction. It is sent
// verbatim when no slots are known.
const BaseInstruction = "You are EduGuide, a helpful academic assistant. " +
	"You should only answer questions related to education: universities, " +
	"scholarships, study abroad, courses, exams, and student life. " +
	"If asked about something else, politely say that you only answer education-related questions.\n\n" +
	"Consider any context provided (name, destination, course) when shaping your replies."

// contextOrder fixes the rendering order of the context block regardless of
// map iteration order.
var contextOrder = []struct {
	slot  string
	label string
}{
	{slots.SlotName, "User's name"},
	{slots.SlotDestination, "Preferred study destination"},
	{slots.SlotCourse, "Interested course/degree"},
}

// Build returns the system instruction for the current slot state. Only set
// slots are rendered; with none set the base instruction is returned
// unchanged, with no trailing context header. Pure function: identical slot
// state yields identical output.
func Build(slotValues map[string]string) string {
	var details []string
	for _, c := range contextOrder {
		if v, ok := slotValues[c.slot]; ok && v != "" {
			details = append(details, c.label+": "+v)
		}
	}
	if len(details) == 0 {
		return BaseInstruction
	}
	return BaseInstruction + "\n\nContext:\n- " + strings.Join(details, "\n- ")
}
