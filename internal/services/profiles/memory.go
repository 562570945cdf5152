package profiles

import (
	"context"
	"sync"

	"github.com/amandanordqvist/datingapp/internal/domain/model"
)

// MemoryCatalog serves the seeded demo profiles when no database is
// configured. It keeps insertion order for paging.
type MemoryCatalog struct {
	mu       sync.RWMutex
	order    []string
	profiles map[string]model.Profile
}

func NewMemoryCatalog(seed []model.Profile) *MemoryCatalog {
	c := &MemoryCatalog{
		profiles: make(map[string]model.Profile, len(seed)),
	}
	for _, p := range seed {
		if _, exists := c.profiles[p.ID]; !exists {
			c.order = append(c.order, p.ID)
		}
		c.profiles[p.ID] = p
	}
	return c
}

func (c *MemoryCatalog) Page(_ context.Context, offset, limit int) ([]model.Profile, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if offset >= len(c.order) || limit <= 0 {
		return []model.Profile{}, nil
	}
	end := offset + limit
	if end > len(c.order) {
		end = len(c.order)
	}

	page := make([]model.Profile, 0, end-offset)
	for _, id := range c.order[offset:end] {
		page = append(page, c.profiles[id])
	}
	return page, nil
}

func (c *MemoryCatalog) Get(_ context.Context, id string) (model.Profile, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	p, ok := c.profiles[id]
	if !ok {
		return model.Profile{}, ErrProfileNotFound
	}
	return p, nil
}

func (c *MemoryCatalog) Upsert(_ context.Context, p model.Profile) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.profiles[p.ID]; !exists {
		c.order = append(c.order, p.ID)
	}
	c.profiles[p.ID] = p
	return nil
}

// SeedProfiles is the demo catalog the app ships with.
func SeedProfiles() []model.Profile {
	return []model.Profile{
		{
			ID:   "1",
			Name: "Emma",
			Age:  24,
			Bio:  "Coffee enthusiast, dog lover, and part-time adventurer. Let's explore the city together!",
			Images: []string{
				"https://images.unsplash.com/photo-1494790108377-be9c29b29330",
				"https://images.unsplash.com/photo-1529626455594-4ff0802cfb7e",
				"https://images.unsplash.com/photo-1484588168347-9d835bb09939",
			},
			Distance:  "2 miles away",
			Location:  "New York, NY",
			Job:       "Marketing Manager",
			Education: "NYU",
			Interests: []string{"Coffee", "Hiking", "Photography", "Dogs"},
			About:     "Looking for someone to explore new coffee shops with and go on weekend adventures. I love my dog Max and taking photos of everything.",
		},
		{
			ID:   "2",
			Name: "Oliver",
			Age:  27,
			Bio:  "Professional photographer who loves to travel. Looking for someone to share experiences with.",
			Images: []string{
				"https://images.unsplash.com/photo-1500648767791-00dcc994a43e",
				"https://images.unsplash.com/photo-1492562080023-ab3db95bfbce",
				"https://images.unsplash.com/photo-1568602471122-7832951cc4c5",
			},
			Distance:  "5 miles away",
			Location:  "Brooklyn, NY",
			Job:       "Photographer",
			Education: "School of Visual Arts",
			Interests: []string{"Photography", "Travel", "Food", "Movies"},
			About:     "I travel the world capturing moments. When I'm not behind the camera, I'm exploring new restaurants or watching indie films.",
		},
		{
			ID:   "3",
			Name: "Sophie",
			Age:  25,
			Bio:  "Art lover and yoga instructor. Enjoy hiking, painting, and relaxing beach days.",
			Images: []string{
				"https://images.unsplash.com/photo-1534528741775-53994a69daeb",
				"https://images.unsplash.com/photo-1524504388940-b1c1722653e1",
				"https://images.unsplash.com/photo-1523264939339-c89f9dadde2e",
			},
			Distance:  "1 mile away",
			Location:  "Manhattan, NY",
			Job:       "Yoga Instructor",
			Education: "Juilliard",
			Interests: []string{"Art", "Yoga", "Hiking", "Beach"},
			About:     "Balance is everything. I teach yoga by day and paint by night. Looking for someone to share peaceful moments with.",
		},
		{
			ID:   "4",
			Name: "Alexander",
			Age:  29,
			Bio:  "Chef and foodie who loves trying new restaurants. Also into fitness, books, and indie music.",
			Images: []string{
				"https://images.unsplash.com/photo-1507003211169-0a1dd7228f2d",
				"https://images.unsplash.com/photo-1499996860823-5214fcc65f8f",
				"https://images.unsplash.com/photo-1492447273231-0f8fecec1e3a",
			},
			Distance:  "3 miles away",
			Location:  "Queens, NY",
			Job:       "Executive Chef",
			Education: "Culinary Institute of America",
			Interests: []string{"Cooking", "Food", "Fitness", "Music"},
			About:     "Food is my passion. I create culinary experiences and believe that good food brings people together. Looking for a dinner companion.",
		},
		{
			ID:   "5",
			Name: "Jessica",
			Age:  26,
			Bio:  "Mountain girl at heart. Loves trail running, camping, and exploring nature. Also a big reader.",
			Images: []string{
				"https://images.unsplash.com/photo-1544005313-94ddf0286df2",
				"https://images.unsplash.com/photo-1531746020798-e6953c6e8e04",
				"https://images.unsplash.com/photo-1488716820095-cbe80883c496",
			},
			Distance:  "7 miles away",
			Location:  "Hoboken, NJ",
			Job:       "Environmental Scientist",
			Education: "Columbia University",
			Interests: []string{"Running", "Camping", "Nature", "Books"},
			About:     "Most weekends you'll find me on a trail or with my nose in a book. I'm passionate about the environment and sustainable living.",
		},
	}
}
