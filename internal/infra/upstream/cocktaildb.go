package upstream

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"

	"quirkit/internal/domain/entity"
)

const (
	APICocktailDB = "cocktaildb"

	DefaultCocktailDBURL = "https://www.thecocktaildb.com/api/json/v1/1"

	maxCocktailIngredients = 15
)

// CocktailDB fetches random drink recipes from TheCocktailDB.
type CocktailDB struct {
	client  *Client
	baseURL string
}

// NewCocktailDB creates a CocktailDB source. An empty baseURL uses DefaultCocktailDBURL.
func NewCocktailDB(client *Client, baseURL string) *CocktailDB {
	if baseURL == "" {
		baseURL = DefaultCocktailDBURL
	}
	return &CocktailDB{client: client, baseURL: strings.TrimRight(baseURL, "/")}
}

// BaseURL is the probe target.
func (c *CocktailDB) BaseURL() string { return c.baseURL }

// cocktail keeps the raw fields because ingredients come as strIngredient1..15.
type cocktail map[string]any

func (c cocktail) field(name string) string {
	s, _ := c[name].(string)
	return strings.TrimSpace(s)
}

// RandomDrink returns a random drink recipe.
func (c *CocktailDB) RandomDrink(ctx context.Context) (entity.Drink, error) {
	var resp struct {
		Drinks []json.RawMessage `json:"drinks"`
	}
	if err := c.client.FetchJSON(ctx, APICocktailDB, c.baseURL+"/random.php", &resp); err != nil {
		return entity.Drink{}, err
	}
	if len(resp.Drinks) == 0 {
		return entity.Drink{}, unavailable(APICocktailDB, "no drinks in response")
	}

	var raw cocktail
	if err := json.Unmarshal(resp.Drinks[0], &raw); err != nil {
		return entity.Drink{}, &DecodeError{API: APICocktailDB, Err: err}
	}
	return toDrink(raw), nil
}

func toDrink(raw cocktail) entity.Drink {
	ingredients := make([]string, 0, maxCocktailIngredients)
	for i := 1; i <= maxCocktailIngredients; i++ {
		n := strconv.Itoa(i)
		ingredient := raw.field("strIngredient" + n)
		if ingredient == "" {
			continue
		}
		if measure := raw.field("strMeasure" + n); measure != "" {
			ingredient = measure + " " + ingredient
		}
		ingredients = append(ingredients, ingredient)
	}

	var instructions []string
	for _, step := range strings.Split(raw.field("strInstructions"), ". ") {
		if step = strings.TrimSpace(step); step != "" {
			instructions = append(instructions, step)
		}
	}

	return entity.Drink{
		Name:         raw.field("strDrink"),
		Ingredients:  ingredients,
		Instructions: instructions,
		Image:        raw.field("strDrinkThumb"),
		Source:       entity.SourceAPI,
	}
}
