package board

import "github.com/louisbranch/activityboard/internal/activities"

// View is the rendered form of one activity collection.
type View struct {
	Cards   []Card
	Options []Choice
}

// Card renders one activity.
type Card struct {
	Name         string
	Description  string
	Schedule     string
	SpotsLeft    int
	Participants []Participant
}

// Empty reports whether the card shows the empty-state message instead of a
// participant list.
func (c Card) Empty() bool {
	return len(c.Participants) == 0
}

// Participant renders one roster entry and its removal control.
type Participant struct {
	ID          string
	Initial     string
	DisplayName string
}

// Choice is one entry of the activity selection control.
type Choice struct {
	Value string
	Label string
}

// Render builds the view for a collection. It has no side effects; cards and
// options follow collection order.
func Render(collection activities.Collection) View {
	view := View{
		Cards:   make([]Card, 0, len(collection)),
		Options: make([]Choice, 0, len(collection)),
	}
	for _, activity := range collection {
		view.Cards = append(view.Cards, renderCard(activity))
		view.Options = append(view.Options, Choice{Value: activity.Name, Label: activity.Name})
	}
	return view
}

func renderCard(activity activities.Activity) Card {
	card := Card{
		Name:        activity.Name,
		Description: activity.Description,
		Schedule:    activity.Schedule,
		SpotsLeft:   activity.SpotsLeft(),
	}
	if len(activity.Participants) == 0 {
		return card
	}
	card.Participants = make([]Participant, 0, len(activity.Participants))
	for _, id := range activity.Participants {
		card.Participants = append(card.Participants, Participant{
			ID:          id,
			Initial:     Initial(id),
			DisplayName: Label(id),
		})
	}
	return card
}

func (v View) clone() View {
	out := View{
		Cards:   make([]Card, len(v.Cards)),
		Options: append([]Choice(nil), v.Options...),
	}
	for i, card := range v.Cards {
		card.Participants = append([]Participant(nil), card.Participants...)
		out.Cards[i] = card
	}
	return out
}
