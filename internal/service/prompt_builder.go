package service

import (
	"fmt"
	"sort"
	"strings"

	"github.com/noah-isme/classroom-seating-api/internal/layout"
	"github.com/noah-isme/classroom-seating-api/internal/models"
	"github.com/noah-isme/classroom-seating-api/pkg/ai"
)

const seatingSystemPrompt = `Jsi asistent učitele, který navrhuje zasedací pořádek ve třídě.

Rozložení třídy dostaneš jako matici. Každý řádek matice je jedna řada lavic, první řádek je nejdál od tabule a poslední řádek je nejblíž tabuli. Buňky v řádku jsou oddělené čárkou a jdou zleva doprava. Buňka "--" znamená, že na tomto místě žádná lavice není. Jinak buňka obsahuje kód lavice: každý znak je jedno místo zleva doprava, "1" je místo k sezení a "0" je místo, které nelze obsadit. Kód složený jen z nul znamená lavici, kde lze obsadit všechna místa.

Očíslovaná matice má stejný tvar a u každé lavice uvádí její číslo (L1, L2, ...). Lavice jsou číslované od tabule dozadu a v každé řadě zleva doprava.

Odpověz výhradně objektem JSON ve tvaru {"seating": [...], "error": null}. Pole "seating" musí mít přesně stejný počet řádků a sloupců jako matice rozložení. Na místě bez lavice je null. Na místě s lavicí je seznam jmen žáků zleva doprava se stejnou délkou, jakou má kód lavice; neobsazené nebo blokované místo je null. Každý žák smí sedět nejvýš jednou a na blokované místo nikoho neposazuj.

Pokud požadavek nelze splnit, vrať {"seating": null, "error": "<stručné vysvětlení v češtině>"}.`

const generationTemplate = `Rozmísti všechny žáky ze seznamu do lavic.

Rozložení třídy:
%s

Očíslované lavice:
%s

Seznam žáků (%d):
%s

Požadavky učitele:
%s`

const modificationTemplate = `Uprav stávající zasedací pořádek. Proveď pouze změnu, o kterou učitel žádá, a všechna ostatní místa ponech přesně tak, jak jsou, včetně prázdných míst. Když žáka z lavice odebereš, jeho místo zůstane prázdné a soused se neposouvá.

Rozložení třídy:
%s

Očíslované lavice:
%s

Současný zasedací pořádek (v hranatých závorkách jsou místa lavice zleva doprava, "%s" je volné místo, "%s" je místo, které nelze obsadit, "--" znamená, že tam lavice není):
%s

Seznam žáků (%d):
%s

Požadovaná změna:
%s`

const noInstruction = "Žádné zvláštní požadavky."

// PromptInput carries the workspace state a prompt is built from.
type PromptInput struct {
	Projection  layout.Projection
	Desks       []models.Desk
	Roster      []string
	Instruction string
	// Current is the applied arrangement; only used for modification prompts.
	Current []models.Desk
}

// PromptBuilder renders the fixed Czech prompt templates.
type PromptBuilder struct{}

// NewPromptBuilder constructs a PromptBuilder.
func NewPromptBuilder() *PromptBuilder {
	return &PromptBuilder{}
}

// Generation builds the request that assigns the whole roster.
func (b *PromptBuilder) Generation(in PromptInput) ai.Request {
	prompt := fmt.Sprintf(generationTemplate,
		in.Projection.Text,
		in.Projection.NumberedText,
		len(in.Roster),
		rosterList(in.Roster),
		constraints(in),
	)
	return ai.Request{
		Label:          string(models.SeatingModeGenerate),
		SystemPrompt:   seatingSystemPrompt,
		Prompt:         prompt,
		ResponseSchema: ai.SeatingSchema(),
	}
}

// Modification builds the request that changes only what the instruction asks for.
func (b *PromptBuilder) Modification(in PromptInput) ai.Request {
	prompt := fmt.Sprintf(modificationTemplate,
		in.Projection.Text,
		in.Projection.NumberedText,
		layout.EmptySeatToken,
		layout.BlockedSeatToken,
		layout.ArrangementMatrix(in.Projection, in.Current),
		len(in.Roster),
		rosterList(in.Roster),
		constraints(in),
	)
	return ai.Request{
		Label:          string(models.SeatingModeModify),
		SystemPrompt:   seatingSystemPrompt,
		Prompt:         prompt,
		ResponseSchema: ai.SeatingSchema(),
	}
}

// BlockedSeatSentences describes every user-blocked seat, ordered by desk number
// then seat. Seats are numbered from 1 starting at the left.
func BlockedSeatSentences(desks []models.Desk, numbers map[string]int) []string {
	type blocked struct {
		desk int
		seat int
	}
	entries := make([]blocked, 0)
	for _, desk := range desks {
		number, ok := numbers[desk.ID]
		if !ok {
			continue
		}
		for _, seat := range desk.UserBlockedSeats {
			if seat < 0 || seat >= desk.SeatCount() {
				continue
			}
			entries = append(entries, blocked{desk: number, seat: seat + 1})
		}
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].desk != entries[j].desk {
			return entries[i].desk < entries[j].desk
		}
		return entries[i].seat < entries[j].seat
	})

	sentences := make([]string, 0, len(entries))
	for _, e := range entries {
		sentences = append(sentences, fmt.Sprintf("V lavici č. %d je místo č. %d (zleva) blokováno a nelze jej obsadit.", e.desk, e.seat))
	}
	return sentences
}

func constraints(in PromptInput) string {
	parts := make([]string, 0)
	if instruction := strings.TrimSpace(in.Instruction); instruction != "" {
		parts = append(parts, instruction)
	}
	parts = append(parts, BlockedSeatSentences(in.Desks, in.Projection.Numbers)...)
	if len(parts) == 0 {
		return noInstruction
	}
	return strings.Join(parts, "\n")
}

func rosterList(roster []string) string {
	lines := make([]string, len(roster))
	for i, name := range roster {
		lines[i] = "- " + name
	}
	return strings.Join(lines, "\n")
}
