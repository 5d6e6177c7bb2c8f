package gateway

import (
	"adventcal/internal/model"
	"fmt"
	"math/rand"
	"strings"
	"time"
)

var mockBadges = []model.Badge{
	{ID: "badge-1", Name: "Early Bird", Description: "Completed first task of the month", Icon: "🐦", Rarity: model.RarityCommon},
	{ID: "badge-2", Name: "Streak Master", Description: "Completed 5 tasks in a row", Icon: "🔥", Rarity: model.RarityRare},
	{ID: "badge-3", Name: "Quiz Champion", Description: "Answered 10 quiz questions correctly", Icon: "🧠", Rarity: model.RarityEpic},
}

// mockUserID is the player the mock pretends is already known
const mockUserID = "user-1"

func mockUser(year int) model.PlayerRecord {
	badges := make([]model.Badge, len(mockBadges))
	for i, b := range mockBadges {
		at := time.Date(year, time.December, 1+i*4, 0, 0, 0, 0, time.UTC)
		b.UnlockedAt = &at
		badges[i] = b
	}
	return model.PlayerRecord{
		ID:     mockUserID,
		Name:   "John Doe",
		Email:  "john.doe@example.com",
		Avatar: "https://images.unsplash.com/photo-1472099645785-5658abf4ff4e?w=150&h=150&fit=crop&crop=face",
		Points: 1250,
		Gems:   45,
		Badges: badges,
	}
}

var mockTaskTemplates = []model.TaskRecord{
	{
		Title:       "Holiday Trivia",
		Description: "Test your knowledge about holiday traditions around the world!",
		Type:        model.TaskTypeQuiz,
		Points:      100,
		GemReward:   5,
		Content: model.QuizContent{
			Question:      "Which country is credited with starting the Christmas tree tradition?",
			Options:       []string{"Germany", "England", "France", "Italy"},
			CorrectAnswer: 0,
		},
	},
	{
		Title:       "Share Your Gratitude",
		Description: "Write about something you're grateful for this holiday season.",
		Type:        model.TaskTypeSurvey,
		Points:      75,
		GemReward:   3,
		Content: model.SurveyContent{
			Question:  "What are you most grateful for this holiday season?",
			MinLength: 50,
		},
	},
	{
		Title:       "Random Act of Kindness",
		Description: "Perform a random act of kindness and share your experience.",
		Type:        model.TaskTypeAction,
		Points:      150,
		GemReward:   8,
		Content: model.ActionContent{
			Instructions:  "Do something kind for someone today - it could be as simple as holding a door, giving a compliment, or helping a neighbor.",
			RequiresProof: true,
		},
	},
	{
		Title:       "Holiday Recipe Challenge",
		Description: "Share your favorite holiday recipe or create a new one!",
		Type:        model.TaskTypeChallenge,
		Points:      200,
		GemReward:   10,
		Content: model.ChallengeContent{
			Challenge: "Share a holiday recipe (traditional or your own creation) with ingredients and instructions.",
			MinLength: 100,
		},
	},
}

// taskForDay returns the fixture task for a calendar day
func taskForDay(day int) *model.TaskRecord {
	t := mockTaskTemplates[(day-1)%len(mockTaskTemplates)]
	t.ID = fmt.Sprintf("task-day-%d", day)
	return &t
}

var festiveIcons = []string{
	"🎄", "🎁", "⭐", "🔔", "🕯️", "🦌", "⛄", "🎅",
	"🤶", "🧝", "🎪", "🎭", "🎨", "🎵", "🎯", "🎲",
	"🍪", "🥛", "🍫", "🧁", "❄️", "☃️", "🌟", "✨",
	"🎊",
}

var dayColors = []string{"#dc2626", "#16a34a", "#f59e0b", "#8b5cf6", "#06b6d4"}

var completionImages = []string{
	"https://images.unsplash.com/photo-1512389142860-9c449e58a543?w=400&h=400&fit=crop&crop=center",
	"https://images.unsplash.com/photo-1544161515-4ab6ce6db874?w=400&h=400&fit=crop&crop=center",
	"https://images.unsplash.com/photo-1576919228236-a097c32a5cd4?w=400&h=400&fit=crop&crop=center",
	"https://images.unsplash.com/photo-1482517967863-00e15c9b44be?w=400&h=400&fit=crop&crop=center",
}

func dayTheme(day int, unlocked, completed bool) *model.DayTheme {
	color := dayColors[day%len(dayColors)]
	theme := &model.DayTheme{
		BackgroundColor: "#374151",
		TextColor:       "#ffffff",
		BorderColor:     "#6b7280",
		Icon:            festiveIcons[day%len(festiveIcons)],
	}
	if unlocked {
		theme.BackgroundColor = color
		theme.BorderColor = color
	}
	if completed {
		theme.Image = completionImages[day%len(completionImages)]
	}
	return theme
}

var mockRewards = []model.Reward{
	{ID: "reward-1", Name: "Company T-Shirt", Description: "Premium branded t-shirt in your size", GemCost: 50, Image: "https://images.unsplash.com/photo-1521572163474-6864f9cf17ab?w=300&h=300&fit=crop", Stock: 15, MaxStock: 20, IsAvailable: true, Category: model.RewardPhysical, Rarity: model.RarityCommon},
	{ID: "reward-2", Name: "Wireless Headphones", Description: "High-quality bluetooth headphones", GemCost: 150, Image: "https://images.unsplash.com/photo-1505740420928-5e560c06d30e?w=300&h=300&fit=crop", Stock: 3, MaxStock: 10, IsAvailable: true, Category: model.RewardPhysical, Rarity: model.RarityRare},
	{ID: "reward-3", Name: "Gift Card $25", Description: "Amazon gift card worth $25", GemCost: 75, Image: "https://images.unsplash.com/photo-1606107557195-0e29a4b5b4aa?w=300&h=300&fit=crop", Stock: 8, MaxStock: 15, IsAvailable: true, Category: model.RewardDigital, Rarity: model.RarityCommon},
	{ID: "reward-4", Name: "Team Lunch", Description: "Join the team for a special lunch outing", GemCost: 100, Image: "https://images.unsplash.com/photo-1414235077428-338989a2e8c0?w=300&h=300&fit=crop", Stock: 0, MaxStock: 5, IsAvailable: false, Category: model.RewardExperience, Rarity: model.RarityRare},
	{ID: "reward-5", Name: "MacBook Pro", Description: "Latest MacBook Pro 14\" - Grand Prize!", GemCost: 500, Image: "https://images.unsplash.com/photo-1517336714731-489689fd1ca8?w=300&h=300&fit=crop", Stock: 1, MaxStock: 1, IsAvailable: true, Category: model.RewardPhysical, Rarity: model.RarityLegendary},
	{ID: "reward-6", Name: "Coffee Mug", Description: "Branded ceramic coffee mug", GemCost: 25, Image: "https://images.unsplash.com/photo-1514228742587-6b1558fcf93a?w=300&h=300&fit=crop", Stock: 12, MaxStock: 25, IsAvailable: true, Category: model.RewardPhysical, Rarity: model.RarityCommon},
}

var mockClientConfigs = map[string]model.ClientConfig{
	"christmas-corp": {
		ID:                "christmas-corp",
		Name:              "Christmas Corp",
		Logo:              "/logo-christmas.png",
		PrimaryColor:      "#dc2626",
		SecondaryColor:    "#16a34a",
		AccentColor:       "#f59e0b",
		BackgroundColor:   "#0f172a",
		TextColor:         "#f8fafc",
		FontFamily:        "Inter, system-ui, sans-serif",
		CalendarTitle:     "Christmas Corp Advent Calendar",
		WelcomeMessage:    "Join our festive countdown! Complete daily challenges to earn rewards and climb the leaderboard.",
		CompletionMessage: "Congratulations! You've completed our Christmas journey. Happy holidays from all of us at Christmas Corp!",
		SocialLinks: model.SocialLinks{
			Website:   "https://christmascorp.com",
			Twitter:   "https://twitter.com/christmascorp",
			Instagram: "https://instagram.com/christmascorp",
		},
	},
	"winter-wonderland": {
		ID:                "winter-wonderland",
		Name:              "Winter Wonderland",
		Logo:              "/logo-winter.png",
		PrimaryColor:      "#3b82f6",
		SecondaryColor:    "#8b5cf6",
		AccentColor:       "#06b6d4",
		BackgroundColor:   "#1e1b4b",
		TextColor:         "#e0e7ff",
		FontFamily:        "Georgia, serif",
		CalendarTitle:     "Winter Wonderland Adventure",
		WelcomeMessage:    "Embark on a magical winter journey filled with daily surprises and challenges.",
		CompletionMessage: "You've conquered the winter wonderland! May your holidays be filled with magic and joy.",
		SocialLinks:       model.SocialLinks{Website: "https://winterwonderland.com"},
	},
	"holiday-heroes": {
		ID:                "holiday-heroes",
		Name:              "Holiday Heroes",
		Logo:              "/logo-heroes.png",
		PrimaryColor:      "#059669",
		SecondaryColor:    "#dc2626",
		AccentColor:       "#f59e0b",
		BackgroundColor:   "#064e3b",
		TextColor:         "#ecfdf5",
		FontFamily:        "Roboto, sans-serif",
		CalendarTitle:     "Holiday Heroes Mission Calendar",
		WelcomeMessage:    "Every day is a new mission to spread holiday cheer. Are you ready to be a Holiday Hero?",
		CompletionMessage: "Mission accomplished, Hero! You've made this holiday season brighter for everyone.",
		SocialLinks: model.SocialLinks{
			Website: "https://holidayheroes.org",
			Twitter: "https://twitter.com/holidayheroes",
		},
	},
}

var (
	firstNames = []string{
		"Sarah", "Mike", "Emily", "Alex", "Jessica", "David", "Lisa", "Chris", "Amanda", "Ryan",
		"Jennifer", "Kevin", "Michelle", "Brian", "Ashley", "Jason", "Stephanie", "Matthew", "Nicole", "Daniel",
	}
	lastNames = []string{
		"Johnson", "Chen", "Davis", "Rodriguez", "Wilson", "Martinez", "Anderson", "Taylor", "Thomas", "Hernandez",
		"Moore", "Martin", "Jackson", "Thompson", "White", "Lopez", "Lee", "Gonzalez", "Harris", "Clark",
	}
	avatars = []string{
		"https://images.unsplash.com/photo-1494790108755-2616b612b786?w=150&h=150&fit=crop&crop=face",
		"https://images.unsplash.com/photo-1507003211169-0a1dd7228f2d?w=150&h=150&fit=crop&crop=face",
		"https://images.unsplash.com/photo-1438761681033-6461ffad8d80?w=150&h=150&fit=crop&crop=face",
		"https://images.unsplash.com/photo-1500648767791-00dcc994a43e?w=150&h=150&fit=crop&crop=face",
	}
)

// mockCompetitor is a generated leaderboard participant
type mockCompetitor struct {
	player    model.PlayerRecord
	completed int
}

// generateCompetitors builds n other players with a realistic point spread
func generateCompetitors(rng *rand.Rand, n int) []mockCompetitor {
	out := make([]mockCompetitor, 0, n)
	for i := 0; i < n; i++ {
		first := firstNames[rng.Intn(len(firstNames))]
		last := lastNames[rng.Intn(len(lastNames))]

		var points int
		switch {
		case i == 0:
			points = 2150
		case i < 10:
			points = rng.Intn(500) + 1000
		case i < 50:
			points = rng.Intn(400) + 600
		case i < 100:
			points = rng.Intn(300) + 300
		default:
			points = rng.Intn(300) + 50
		}

		out = append(out, mockCompetitor{
			player: model.PlayerRecord{
				ID:     fmt.Sprintf("user-%d", i+3),
				Name:   first + " " + last,
				Email:  fmt.Sprintf("%s.%s@example.com", strings.ToLower(first), strings.ToLower(last)),
				Avatar: avatars[rng.Intn(len(avatars))],
				Points: points,
				Gems:   points/50 + rng.Intn(10),
				Badges: []model.Badge{},
			},
			completed: points/100 + rng.Intn(3),
		})
	}
	return out
}
