// Package devserver is an in-memory stand-in for the recipe backend. It
// speaks the same wire contract as the real service so the web frontend can
// be developed and demoed without it. Nothing here survives a restart.
package devserver

import (
	"context"
	"fmt"
	"net/http"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/mealmate/v2/internal/domain/grocery"
	"github.com/mealmate/v2/internal/domain/recipe"
	"go.uber.org/zap"
)

// Server holds the in-memory backend state
type Server struct {
	logger *zap.Logger
	engine *gin.Engine
	server *http.Server

	mu          sync.Mutex
	folders     map[string]*folderState
	folderOrder []string
	lists       map[string]grocery.List
	listOrder   []string
}

type folderState struct {
	folder  recipe.Folder
	recipes []recipe.Recipe
}

// NewServer creates a dev backend with the protected uncategorized folder
// and a couple of seed recipes
func NewServer(logger *zap.Logger) *Server {
	gin.SetMode(gin.ReleaseMode)

	s := &Server{
		logger:  logger.Named("devserver"),
		folders: make(map[string]*folderState),
		lists:   make(map[string]grocery.List),
	}
	s.addFolder(recipe.Folder{ID: recipe.UncategorizedFolderID, Name: "Uncategorized"})
	s.seed()

	s.engine = gin.New()
	s.engine.Use(gin.Recovery())
	s.routes()
	return s
}

func (s *Server) addFolder(f recipe.Folder) {
	f.CreatedAt = time.Now().UTC().Format(time.RFC3339)
	s.folders[f.ID] = &folderState{folder: f}
	s.folderOrder = append(s.folderOrder, f.ID)
}

func (s *Server) seed() {
	seeds := []recipe.Recipe{
		{
			Name:        "Chicken Noodle Soup",
			FolderID:    recipe.UncategorizedFolderID,
			ServingSize: "4 servings",
			Ingredients: []string{
				"1 lb chicken breast",
				"8 oz egg noodles",
				"2 carrots, sliced",
				"6 cups chicken broth",
			},
			Instructions: []string{
				"Simmer chicken in broth until cooked through.",
				"Shred chicken and return to pot with carrots.",
				"Add noodles and cook until tender.",
			},
		},
		{
			Name:        "Vegetable Stir Fry",
			FolderID:    recipe.UncategorizedFolderID,
			ServingSize: "2 servings",
			Ingredients: []string{
				"2 cups mixed vegetables",
				"2 tbsp soy sauce",
				"1 tbsp sesame oil",
			},
			Instructions: []string{
				"Heat oil in a wok over high heat.",
				"Stir fry vegetables until crisp-tender.",
				"Toss with soy sauce and serve.",
			},
		},
	}
	uncategorized := s.folders[recipe.UncategorizedFolderID]
	uncategorized.recipes = append(uncategorized.recipes, seeds...)
	uncategorized.folder.RecipeCount = len(uncategorized.recipes)
}

func (s *Server) routes() {
	api := s.engine.Group("/api")

	api.GET("/folders", s.listFolders)
	api.POST("/folders", s.createFolder)
	api.PUT("/folders/:id", s.renameFolder)
	api.DELETE("/folders/:id", s.deleteFolder)
	api.GET("/folders/:id/recipes", s.folderRecipes)

	api.GET("/recipes", s.listRecipes)
	api.GET("/recipe/:folder/:name", s.getRecipe)
	api.POST("/save-manual-recipe", s.saveManualRecipe)
	api.POST("/extract-recipe", s.extractRecipe)
	api.POST("/save-search-result", s.saveSearchResult)
	api.POST("/move-recipe", s.moveRecipe)
	api.DELETE("/delete-recipe/:folder/:name", s.deleteRecipe)
	api.POST("/recipe-search", s.recipeSearch)

	api.POST("/create-meal-plan", s.createMealPlan)
	api.POST("/grocery-lists", s.saveGroceryList)
	api.GET("/grocery-lists", s.listGroceryLists)
	api.GET("/grocery-lists/:id", s.getGroceryList)
	api.DELETE("/grocery-lists/:id", s.deleteGroceryList)
}

// Router exposes the handler for tests
func (s *Server) Router() http.Handler {
	return s.engine
}

// Start begins serving on addr; it blocks until the listener closes
func (s *Server) Start(addr string) error {
	s.server = &http.Server{Addr: addr, Handler: s.engine}
	s.logger.Info("starting dev backend", zap.String("addr", addr))
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("dev backend failed: %w", err)
	}
	return nil
}

// Shutdown gracefully stops the server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

func fail(c *gin.Context, status int, format string, args ...interface{}) {
	c.JSON(status, gin.H{"error": fmt.Sprintf(format, args...)})
}

// Folders

func (s *Server) listFolders(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	folders := make([]recipe.Folder, 0, len(s.folderOrder))
	for _, id := range s.folderOrder {
		st := s.folders[id]
		st.folder.RecipeCount = len(st.recipes)
		folders = append(folders, st.folder)
	}
	c.JSON(http.StatusOK, folders)
}

func (s *Server) createFolder(c *gin.Context) {
	var req struct {
		Name string `json:"name"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Name) == "" {
		fail(c, http.StatusBadRequest, "Folder name is required")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, st := range s.folders {
		if strings.EqualFold(st.folder.Name, req.Name) {
			fail(c, http.StatusConflict, "A folder named %q already exists", req.Name)
			return
		}
	}
	f := recipe.Folder{ID: uuid.New().String(), Name: strings.TrimSpace(req.Name)}
	s.addFolder(f)
	c.JSON(http.StatusCreated, gin.H{"success": true, "folder": f})
}

func (s *Server) renameFolder(c *gin.Context) {
	id := c.Param("id")
	var req struct {
		Name string `json:"name"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Name) == "" {
		fail(c, http.StatusBadRequest, "Folder name is required")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if id == recipe.UncategorizedFolderID {
		fail(c, http.StatusForbidden, "The Uncategorized folder cannot be renamed")
		return
	}
	st, ok := s.folders[id]
	if !ok {
		fail(c, http.StatusNotFound, "Folder not found")
		return
	}
	st.folder.Name = strings.TrimSpace(req.Name)
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (s *Server) deleteFolder(c *gin.Context) {
	id := c.Param("id")

	s.mu.Lock()
	defer s.mu.Unlock()

	if id == recipe.UncategorizedFolderID {
		fail(c, http.StatusForbidden, "The Uncategorized folder cannot be deleted")
		return
	}
	st, ok := s.folders[id]
	if !ok {
		fail(c, http.StatusNotFound, "Folder not found")
		return
	}

	// Orphaned recipes land in the protected folder
	uncategorized := s.folders[recipe.UncategorizedFolderID]
	for _, r := range st.recipes {
		r.FolderID = recipe.UncategorizedFolderID
		uncategorized.recipes = append(uncategorized.recipes, r)
	}
	delete(s.folders, id)
	for i, fid := range s.folderOrder {
		if fid == id {
			s.folderOrder = append(s.folderOrder[:i], s.folderOrder[i+1:]...)
			break
		}
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (s *Server) folderRecipes(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, ok := s.folders[c.Param("id")]
	if !ok {
		fail(c, http.StatusNotFound, "Folder not found")
		return
	}
	c.JSON(http.StatusOK, s.summaries(st))
}

func (s *Server) summaries(st *folderState) []recipe.Summary {
	out := make([]recipe.Summary, 0, len(st.recipes))
	for _, r := range st.recipes {
		sum := r.Summary()
		sum.FolderName = st.folder.Name
		out = append(out, sum)
	}
	return out
}

// Recipes

func (s *Server) listRecipes(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []recipe.Summary
	for _, id := range s.folderOrder {
		out = append(out, s.summaries(s.folders[id])...)
	}
	if out == nil {
		out = []recipe.Summary{}
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) getRecipe(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, _, ok := s.findRecipe(c.Param("folder"), c.Param("name"))
	if !ok {
		fail(c, http.StatusNotFound, "Recipe not found")
		return
	}
	c.JSON(http.StatusOK, r)
}

// findRecipe must be called with the lock held
func (s *Server) findRecipe(folderID, name string) (recipe.Recipe, int, bool) {
	st, ok := s.folders[folderID]
	if !ok {
		return recipe.Recipe{}, 0, false
	}
	for i, r := range st.recipes {
		if r.Name == name {
			return r, i, true
		}
	}
	return recipe.Recipe{}, 0, false
}

func (s *Server) storeRecipe(c *gin.Context, r recipe.Recipe) bool {
	if r.FolderID == "" {
		r.FolderID = recipe.UncategorizedFolderID
	}
	st, ok := s.folders[r.FolderID]
	if !ok {
		fail(c, http.StatusNotFound, "Folder not found")
		return false
	}
	if _, _, exists := s.findRecipe(r.FolderID, r.Name); exists {
		fail(c, http.StatusConflict, "A recipe named %q already exists in this folder", r.Name)
		return false
	}
	st.recipes = append(st.recipes, r)
	return true
}

func (s *Server) saveManualRecipe(c *gin.Context) {
	var r recipe.Recipe
	if err := c.ShouldBindJSON(&r); err != nil {
		fail(c, http.StatusBadRequest, "Invalid recipe payload")
		return
	}
	if err := r.Validate(); err != nil {
		fail(c, http.StatusBadRequest, "%s", err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.storeRecipe(c, r) {
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true})
}

func (s *Server) extractRecipe(c *gin.Context) {
	var req struct {
		URL      string `json:"url"`
		FolderID string `json:"folder_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.URL == "" {
		fail(c, http.StatusBadRequest, "A page URL is required")
		return
	}

	r := fakeRecipe()
	r.FolderID = req.FolderID

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.storeRecipe(c, r) {
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": fmt.Sprintf("Extracted %q from %s", r.Name, req.URL),
		"recipe":  r,
	})
}

func (s *Server) saveSearchResult(c *gin.Context) {
	var req struct {
		Recipe   recipe.Recipe `json:"recipe"`
		FolderID string        `json:"folder_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "Invalid recipe payload")
		return
	}
	if err := req.Recipe.Validate(); err != nil {
		fail(c, http.StatusBadRequest, "%s", err)
		return
	}
	req.Recipe.FolderID = req.FolderID

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.storeRecipe(c, req.Recipe) {
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true})
}

func (s *Server) moveRecipe(c *gin.Context) {
	var req struct {
		RecipeName    string `json:"recipe_name"`
		CurrentFolder string `json:"current_folder"`
		TargetFolder  string `json:"target_folder"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "Invalid move payload")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	target, ok := s.folders[req.TargetFolder]
	if !ok {
		fail(c, http.StatusNotFound, "Target folder not found")
		return
	}
	r, i, ok := s.findRecipe(req.CurrentFolder, req.RecipeName)
	if !ok {
		fail(c, http.StatusNotFound, "Recipe not found")
		return
	}
	source := s.folders[req.CurrentFolder]
	source.recipes = append(source.recipes[:i], source.recipes[i+1:]...)
	r.FolderID = req.TargetFolder
	target.recipes = append(target.recipes, r)
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (s *Server) deleteRecipe(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	folderID := c.Param("folder")
	_, i, ok := s.findRecipe(folderID, c.Param("name"))
	if !ok {
		fail(c, http.StatusNotFound, "Recipe not found")
		return
	}
	st := s.folders[folderID]
	st.recipes = append(st.recipes[:i], st.recipes[i+1:]...)
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (s *Server) recipeSearch(c *gin.Context) {
	var req struct {
		Description string `json:"description"`
		SearchType  string `json:"search_type"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Description) == "" {
		fail(c, http.StatusBadRequest, "A search description is required")
		return
	}

	recipes := make([]recipe.Recipe, 0, 3)
	for i := 0; i < 3; i++ {
		r := fakeRecipe()
		r.Name = fmt.Sprintf("%s %s", titleCase(strings.TrimSpace(req.Description)), r.Name)
		recipes = append(recipes, r)
	}
	c.JSON(http.StatusOK, gin.H{"recipes": recipes})
}

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// fakeRecipe fabricates a plausible recipe for extraction and web search
func fakeRecipe() recipe.Recipe {
	ingredients := make([]string, 0, 4)
	for i := 0; i < 4; i++ {
		ingredients = append(ingredients, fmt.Sprintf("1 cup %s", gofakeit.Vegetable()))
	}
	return recipe.Recipe{
		Name:        gofakeit.Dinner(),
		ServingSize: fmt.Sprintf("%d servings", gofakeit.Number(2, 6)),
		Ingredients: ingredients,
		Instructions: []string{
			"Combine all ingredients in a large pot.",
			"Cook over medium heat until done.",
			"Season to taste and serve.",
		},
	}
}

// Meal plans and grocery lists

func (s *Server) createMealPlan(c *gin.Context) {
	var req struct {
		Recipes   []string `json:"recipes"`
		StartDate string   `json:"start_date"`
		EndDate   string   `json:"end_date"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || len(req.Recipes) == 0 {
		fail(c, http.StatusBadRequest, "At least one recipe is required")
		return
	}
	start, err := time.Parse(grocery.PlanDateFormat, req.StartDate)
	if err != nil {
		fail(c, http.StatusBadRequest, "Invalid start date")
		return
	}
	end, err := time.Parse(grocery.PlanDateFormat, req.EndDate)
	if err != nil {
		fail(c, http.StatusBadRequest, "Invalid end date")
		return
	}
	if start.After(end) {
		fail(c, http.StatusBadRequest, "End date must not be before the start date")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Naive aggregation: gather every ingredient line of the selected
	// recipes, first occurrence wins on a case-insensitive match.
	seen := make(map[string]bool)
	var items []string
	for _, name := range req.Recipes {
		r, ok := s.findRecipeByName(name)
		if !ok {
			fail(c, http.StatusNotFound, "Recipe %q not found", name)
			return
		}
		for _, line := range r.Ingredients {
			key := strings.ToLower(strings.TrimSpace(line))
			if seen[key] {
				continue
			}
			seen[key] = true
			items = append(items, line)
		}
	}
	sort.Strings(items)

	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"meal_plan":    req.Recipes,
		"grocery_list": items,
		"date_range": grocery.DateRange{
			Start: req.StartDate,
			End:   req.EndDate,
			Days:  int(end.Sub(start).Hours()/24) + 1,
		},
	})
}

// findRecipeByName must be called with the lock held
func (s *Server) findRecipeByName(name string) (recipe.Recipe, bool) {
	for _, id := range s.folderOrder {
		if r, _, ok := s.findRecipe(id, name); ok {
			return r, true
		}
	}
	return recipe.Recipe{}, false
}

func (s *Server) saveGroceryList(c *gin.Context) {
	var req struct {
		Items     []string          `json:"groceryList"`
		MealPlan  []string          `json:"mealPlan"`
		DateRange grocery.DateRange `json:"dateRange"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || len(req.Items) == 0 {
		fail(c, http.StatusBadRequest, "A grocery list is required")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	id := uuid.New().String()
	s.lists[id] = grocery.List{
		ID:        id,
		Items:     req.Items,
		MealPlan:  req.MealPlan,
		DateRange: req.DateRange,
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
	}
	s.listOrder = append(s.listOrder, id)
	c.JSON(http.StatusCreated, gin.H{"success": true, "id": id})
}

func (s *Server) listGroceryLists(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	lists := make([]grocery.List, 0, len(s.listOrder))
	for _, id := range s.listOrder {
		lists = append(lists, s.lists[id])
	}
	c.JSON(http.StatusOK, lists)
}

func (s *Server) getGroceryList(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	list, ok := s.lists[c.Param("id")]
	if !ok {
		fail(c, http.StatusNotFound, "Grocery list not found")
		return
	}
	c.JSON(http.StatusOK, list)
}

func (s *Server) deleteGroceryList(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := c.Param("id")
	if _, ok := s.lists[id]; !ok {
		fail(c, http.StatusNotFound, "Grocery list not found")
		return
	}
	delete(s.lists, id)
	for i, lid := range s.listOrder {
		if lid == id {
			s.listOrder = append(s.listOrder[:i], s.listOrder[i+1:]...)
			break
		}
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
