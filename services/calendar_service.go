// services/calendar_service.go
package services

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"cleaning-crm/models"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	calendar "google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"
)

// BusyInterval is an occupied span fetched from the calendar provider.
type BusyInterval struct {
	Start time.Time
	End   time.Time
}

// TimeSlot is one hourly window within business hours, recomputed on every
// availability request.
type TimeSlot struct {
	StartTime time.Time `json:"startTime"`
	EndTime   time.Time `json:"endTime"`
	Available bool      `json:"available"`
}

// CalendarEvent mirrors a booking once the provider accepted it.
type CalendarEvent struct {
	ID       string `json:"id"`
	HTMLLink string `json:"htmlLink"`
}

// EventInput carries everything the provider event needs besides the customer.
type EventInput struct {
	StartTime          time.Time
	EndTime            time.Time
	Area               float64
	CleaningType       string
	Price              float64
	Duration           int
	ServiceItems       []models.ServiceItem
	IsBusinessCustomer bool
}

// Calendar is the external calendar collaborator. The booking workflow and
// the availability endpoint only see this interface.
type Calendar interface {
	CreateEvent(ctx context.Context, input EventInput, customer models.Customer) (*CalendarEvent, error)
	BusyIntervals(ctx context.Context, from, to time.Time) ([]BusyInterval, error)
	EmbedURL() string
}

// GoogleCalendar implements Calendar against the Google Calendar API using
// an OAuth refresh token.
type GoogleCalendar struct {
	svc        *calendar.Service
	calendarID string
	timeZone   string
	loc        *time.Location
}

// NewGoogleCalendarFromEnv builds the client from GOOGLE_* environment
// variables. Every credential is required; a missing one is a startup error.
func NewGoogleCalendarFromEnv(ctx context.Context, loc *time.Location) (*GoogleCalendar, error) {
	clientID := strings.TrimSpace(os.Getenv("GOOGLE_CLIENT_ID"))
	clientSecret := strings.TrimSpace(os.Getenv("GOOGLE_CLIENT_SECRET"))
	refreshToken := strings.TrimSpace(os.Getenv("GOOGLE_CALENDAR_REFRESH_TOKEN"))
	redirectURI := strings.TrimSpace(os.Getenv("GOOGLE_REDIRECT_URI"))

	switch "" {
	case clientID:
		return nil, fmt.Errorf("missing GOOGLE_CLIENT_ID")
	case clientSecret:
		return nil, fmt.Errorf("missing GOOGLE_CLIENT_SECRET")
	case refreshToken:
		return nil, fmt.Errorf("missing GOOGLE_CALENDAR_REFRESH_TOKEN")
	case redirectURI:
		return nil, fmt.Errorf("missing GOOGLE_REDIRECT_URI")
	}

	conf := &oauth2.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		RedirectURL:  redirectURI,
		Scopes:       []string{calendar.CalendarScope},
		Endpoint:     google.Endpoint,
	}
	client := conf.Client(ctx, &oauth2.Token{RefreshToken: refreshToken})

	svc, err := calendar.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return nil, fmt.Errorf("failed to init calendar client: %w", err)
	}

	calendarID := strings.TrimSpace(os.Getenv("GOOGLE_CALENDAR_ID"))
	if calendarID == "" {
		calendarID = "primary"
	}

	return &GoogleCalendar{
		svc:        svc,
		calendarID: calendarID,
		timeZone:   loc.String(),
		loc:        loc,
	}, nil
}

var cleaningTypeColors = map[string]string{
	models.CleaningTypeHome:    "9",  // purple
	models.CleaningTypeOffice:  "5",  // yellow
	models.CleaningTypeMoveOut: "11", // red
}

func colorIDForCleaningType(cleaningType string) string {
	if id, ok := cleaningTypeColors[cleaningType]; ok {
		return id
	}
	return "1" // blue
}

func formatEventPrice(price float64) string {
	return fmt.Sprintf("€%.2f", price)
}

// eventDescription composes the human-readable event body from booking and
// customer fields. Downstream staff read this in the calendar UI, so the
// layout is fixed.
func eventDescription(input EventInput, customer models.Customer) string {
	var b strings.Builder

	customerType := "Private"
	if input.IsBusinessCustomer {
		customerType = "Business"
	}

	fmt.Fprintf(&b, "SERVICE DETAILS\n--------------\n")
	fmt.Fprintf(&b, "Type: %s\n", input.CleaningType)
	fmt.Fprintf(&b, "Area: %.0f sq meters\n", input.Area)
	fmt.Fprintf(&b, "Duration: %d hours\n", input.Duration)
	fmt.Fprintf(&b, "Price: %s\n", formatEventPrice(input.Price))
	fmt.Fprintf(&b, "Customer Type: %s\n\n", customerType)

	fmt.Fprintf(&b, "CUSTOMER INFO\n------------\n")
	fmt.Fprintf(&b, "Name: %s\n", customer.Name)
	fmt.Fprintf(&b, "Phone: %s\n", customer.Phone)
	fmt.Fprintf(&b, "Email: %s\n", customer.Email)
	fmt.Fprintf(&b, "Address: %s", customer.Address)

	if len(input.ServiceItems) > 0 {
		b.WriteString("\n\nADDITIONAL SERVICES\n-----------------\n")
		for i, item := range input.ServiceItems {
			if i > 0 {
				b.WriteString("\n\n")
			}
			fmt.Fprintf(&b, "%d. %s", i+1, item.Name)
			if item.Frequency != "" {
				fmt.Fprintf(&b, " (%s)", item.Frequency)
			}
			if item.Description != "" {
				fmt.Fprintf(&b, "\n   Description: %s", item.Description)
			}
		}
	}

	return b.String()
}

func (g *GoogleCalendar) CreateEvent(ctx context.Context, input EventInput, customer models.Customer) (*CalendarEvent, error) {
	event := &calendar.Event{
		Summary:     fmt.Sprintf("%s - %s (%s)", customer.Name, input.CleaningType, formatEventPrice(input.Price)),
		Description: eventDescription(input, customer),
		Location:    customer.Address,
		ColorId:     colorIDForCleaningType(input.CleaningType),
		Start: &calendar.EventDateTime{
			DateTime: input.StartTime.Format(time.RFC3339),
			TimeZone: g.timeZone,
		},
		End: &calendar.EventDateTime{
			DateTime: input.EndTime.Format(time.RFC3339),
			TimeZone: g.timeZone,
		},
	}

	created, err := g.svc.Events.Insert(g.calendarID, event).
		SendUpdates("none").
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("failed to create calendar event: %w", err)
	}

	return &CalendarEvent{ID: created.Id, HTMLLink: created.HtmlLink}, nil
}

func (g *GoogleCalendar) BusyIntervals(ctx context.Context, from, to time.Time) ([]BusyInterval, error) {
	resp, err := g.svc.Events.List(g.calendarID).
		TimeMin(from.Format(time.RFC3339)).
		TimeMax(to.Format(time.RFC3339)).
		SingleEvents(true).
		OrderBy("startTime").
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("failed to fetch calendar events: %w", err)
	}

	intervals := make([]BusyInterval, 0, len(resp.Items))
	for _, item := range resp.Items {
		start, ok := g.parseEventTime(item.Start)
		if !ok {
			continue
		}
		end, ok := g.parseEventTime(item.End)
		if !ok {
			continue
		}
		intervals = append(intervals, BusyInterval{Start: start, End: end})
	}
	return intervals, nil
}

// parseEventTime handles both timed events (DateTime) and all-day events
// (Date, midnight to midnight in the business zone).
func (g *GoogleCalendar) parseEventTime(edt *calendar.EventDateTime) (time.Time, bool) {
	if edt == nil {
		return time.Time{}, false
	}
	if edt.DateTime != "" {
		t, err := time.Parse(time.RFC3339, edt.DateTime)
		if err != nil {
			return time.Time{}, false
		}
		return t, true
	}
	if edt.Date != "" {
		t, err := time.ParseInLocation("2006-01-02", edt.Date, g.loc)
		if err != nil {
			return time.Time{}, false
		}
		return t, true
	}
	return time.Time{}, false
}

// EmbedURL is the public read-only calendar link shown in the CRM.
func (g *GoogleCalendar) EmbedURL() string {
	return "https://calendar.google.com/calendar/embed?src=" + url.QueryEscape(g.calendarID)
}
