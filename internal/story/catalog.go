package story

import "littlestars/internal/models"

// Catalog is the fixed set of stories offered on the site
type Catalog struct {
	order   []string
	stories map[string]models.Story
}

// NewCatalog builds a catalog from the given stories, keeping their order
func NewCatalog(stories ...models.Story) *Catalog {
	c := &Catalog{stories: make(map[string]models.Story, len(stories))}
	for _, s := range stories {
		c.order = append(c.order, s.ID)
		c.stories[s.ID] = s
	}
	return c
}

// Get looks up a story by id
func (c *Catalog) Get(id string) (models.Story, bool) {
	s, ok := c.stories[id]
	return s, ok
}

// List returns the stories in display order
func (c *Catalog) List() []models.Story {
	list := make([]models.Story, 0, len(c.order))
	for _, id := range c.order {
		list = append(list, c.stories[id])
	}
	return list
}

// DefaultCatalog returns the three built-in picture stories
func DefaultCatalog() *Catalog {
	return NewCatalog(
		models.Story{
			ID:    "adventure",
			Title: "The Little Explorer",
			Pages: []models.StoryPage{
				{
					Scene: "🏔️🌲☀️",
					Text:  "Once upon a time, there was a little boy named Timmy who loved to explore. One sunny morning, he decided to go on an adventure in the magical forest behind his house.",
				},
				{
					Scene: "🦋🌸🌿",
					Text:  "As Timmy walked through the forest, he met a beautiful butterfly who showed him the way to a secret garden filled with colorful flowers and singing birds.",
				},
				{
					Scene: "🏠👦✨",
					Text:  "After his wonderful adventure, Timmy returned home with a heart full of joy and memories of the magical forest. He couldn't wait to tell his family about his amazing journey!",
				},
			},
		},
		models.Story{
			ID:    "animals",
			Title: "Animal Friends",
			Pages: []models.StoryPage{
				{
					Scene: "🐄🐷🐔",
					Text:  "Welcome to Happy Farm! Here, all the animals live together in harmony. Let's meet our friendly farm animals and learn about their special sounds.",
				},
				{
					Scene: "🐕🐱🐰",
					Text:  "In the farmyard, the pets love to play together. The dog barks 'Woof!', the cat meows 'Meow!', and the bunny hops around happily.",
				},
				{
					Scene: "❤️🏡🌟",
					Text:  "At Happy Farm, everyone is friends! The animals teach us that kindness and friendship make the world a better place for everyone.",
				},
			},
		},
		models.Story{
			ID:    "colors",
			Title: "Rainbow Magic",
			Pages: []models.StoryPage{
				{
					Scene: "🌈🎨✨",
					Text:  "In a magical land, there lived a little artist who could paint with rainbow colors. Every stroke of her brush created beautiful, vibrant colors that danced in the sky.",
				},
				{
					Scene: "🔴🟡🔵",
					Text:  "The artist mixed red and yellow to make orange, blue and yellow to make green, and red and blue to make purple. What wonderful colors!",
				},
				{
					Scene: "🎉🌟💖",
					Text:  "With her rainbow magic, the artist painted a beautiful world where everyone could see the beauty in all colors, teaching us that diversity makes life more beautiful!",
				},
			},
		},
	)
}
