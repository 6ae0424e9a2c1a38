package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/StevenOyar/RegenArdhi/models"

	"gorm.io/gorm"
)

// Inference models tried in order; anything that fails falls through to
// the next, and ultimately to the built-in responder.
var chatModels = []string{
	"mistralai/mistral-7b-instruct",
	"google/gemma-2-2b-it",
	"tiiuae/falcon-7b-instruct",
	"mistralai/Mistral-7B-Instruct-v0.2",
}

type ChatService struct {
	db     *gorm.DB
	apiKey string
	client *http.Client
}

func NewChatService(db *gorm.DB) *ChatService {
	return &ChatService{
		db:     db,
		apiKey: os.Getenv("HUGGINGFACE_API_KEY"),
		client: &http.Client{Timeout: 15 * time.Second},
	}
}

// chatContext is the snapshot persisted alongside each exchange.
type chatContext struct {
	TotalProjects  int64    `json:"total_projects"`
	TotalArea      float64  `json:"total_area"`
	ActiveProjects int64    `json:"active_projects"`
	RecentProjects []string `json:"recent_projects"`

	ProjectName      string   `json:"project_name,omitempty"`
	ProjectType      string   `json:"project_type,omitempty"`
	ProjectStatus    string   `json:"project_status,omitempty"`
	Degradation      string   `json:"degradation,omitempty"`
	CurrentNDVI      *float64 `json:"current_ndvi,omitempty"`
	VegetationHealth string   `json:"vegetation_health,omitempty"`
	SoilMoisture     *float64 `json:"soil_moisture,omitempty"`
}

func (s *ChatService) buildContext(userID uint, project *models.Project) *chatContext {
	ctx := &chatContext{}

	type agg struct {
		Total  int64
		Area   float64
		Active int64
	}
	var a agg
	s.db.Model(&models.Project{}).
		Select("COUNT(*) AS total, COALESCE(SUM(area_ha),0) AS area, COUNT(CASE WHEN status = 'active' THEN 1 END) AS active").
		Where("user_id = ?", userID).Scan(&a)
	ctx.TotalProjects = a.Total
	ctx.TotalArea = a.Area
	ctx.ActiveProjects = a.Active

	var recent []models.Project
	s.db.Select("name, project_type, status").Where("user_id = ?", userID).
		Order("created_at DESC").Limit(3).Find(&recent)
	for _, p := range recent {
		ctx.RecentProjects = append(ctx.RecentProjects, fmt.Sprintf("%s (%s, %s)", p.Name, p.ProjectType, p.Status))
	}

	if project != nil {
		ctx.ProjectName = project.Name
		ctx.ProjectType = project.ProjectType
		ctx.ProjectStatus = project.Status
		ctx.Degradation = project.Degradation

		var rec models.MonitoringRecord
		if err := s.db.Where("project_id = ?", project.ID).Order("recorded_at DESC").First(&rec).Error; err == nil {
			ndvi := rec.NDVI
			moisture := rec.SoilMoisture
			ctx.CurrentNDVI = &ndvi
			ctx.VegetationHealth = rec.VegetationHealth
			ctx.SoilMoisture = &moisture
		}
	}
	return ctx
}

// contextPrompt flattens the context into the pipe-separated string fed to
// the model and scanned by the fallback responder.
func (ctx *chatContext) contextPrompt() string {
	var parts []string
	if ctx.TotalProjects > 0 {
		parts = append(parts, fmt.Sprintf("User manages %d projects covering %.1f hectares", ctx.TotalProjects, ctx.TotalArea))
	}
	if ctx.ProjectName != "" {
		parts = append(parts, fmt.Sprintf("Current project: %s (%s)", ctx.ProjectName, ctx.ProjectType))
		if ctx.CurrentNDVI != nil {
			parts = append(parts, fmt.Sprintf("NDVI: %.2f (%s)", *ctx.CurrentNDVI, VegetationHealth(*ctx.CurrentNDVI)))
		}
		if ctx.VegetationHealth != "" {
			parts = append(parts, fmt.Sprintf("Vegetation health: %s", ctx.VegetationHealth))
		}
		if ctx.SoilMoisture != nil {
			parts = append(parts, fmt.Sprintf("Soil moisture: %.1f%%", *ctx.SoilMoisture))
		}
	}
	return strings.Join(parts, " | ")
}

type hfRequest struct {
	Inputs     string `json:"inputs"`
	Parameters struct {
		MaxNewTokens   int     `json:"max_new_tokens"`
		Temperature    float64 `json:"temperature"`
		ReturnFullText bool    `json:"return_full_text"`
	} `json:"parameters"`
	Options struct {
		WaitForModel bool `json:"wait_for_model"`
	} `json:"options"`
}

// queryModels walks the model list and returns the first usable answer.
// Responses under 20 characters are treated as failures.
func (s *ChatService) queryModels(message, contextInfo string) string {
	if s.apiKey == "" {
		return ""
	}

	prompt := message
	if contextInfo != "" {
		prompt = fmt.Sprintf("Context: %s\nQuestion: %s\nAnswer:", contextInfo, message)
	}

	var req hfRequest
	req.Inputs = prompt
	req.Parameters.MaxNewTokens = 200
	req.Parameters.Temperature = 0.7
	req.Options.WaitForModel = true
	payload, _ := json.Marshal(req)

	for _, model := range chatModels {
		u := "https://api-inference.huggingface.co/models/" + model
		httpReq, err := http.NewRequest("POST", u, bytes.NewReader(payload))
		if err != nil {
			continue
		}
		httpReq.Header.Set("Authorization", "Bearer "+s.apiKey)
		httpReq.Header.Set("Content-Type", "application/json")

		resp, err := s.client.Do(httpReq)
		if err != nil {
			continue
		}
		body, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			continue
		}
		if resp.StatusCode == http.StatusUnauthorized {
			return "" // bad key, no point trying other models
		}
		if resp.StatusCode != http.StatusOK {
			continue
		}

		text := extractGeneratedText(body)
		text = strings.TrimSpace(strings.Replace(text, prompt, "", 1))
		if len(text) > 20 {
			return text
		}
	}
	return ""
}

func extractGeneratedText(body []byte) string {
	var list []map[string]any
	if err := json.Unmarshal(body, &list); err == nil && len(list) > 0 {
		if t, ok := list[0]["generated_text"].(string); ok {
			return t
		}
	}
	var obj map[string]any
	if err := json.Unmarshal(body, &obj); err == nil {
		if t, ok := obj["generated_text"].(string); ok {
			return t
		}
	}
	var strs []string
	if err := json.Unmarshal(body, &strs); err == nil && len(strs) > 0 {
		return strs[0]
	}
	return ""
}

var ndviInContext = regexp.MustCompile(`ndvi:\s*([\d.]+)`)

// FallbackResponse is the deterministic knowledge-base responder used
// whenever the inference API yields nothing. Keyed on message intent.
func FallbackResponse(message, contextInfo string, now time.Time) string {
	lower := strings.ToLower(message)

	switch {
	case strings.Contains(lower, "ndvi") || strings.Contains(lower, "vegetation"):
		if m := ndviInContext.FindStringSubmatch(strings.ToLower(contextInfo)); m != nil {
			if ndvi, err := strconv.ParseFloat(m[1], 64); err == nil {
				switch {
				case ndvi > 0.6:
					return fmt.Sprintf("Great news! Your NDVI is %.2f, indicating excellent vegetation health. Your restoration efforts are showing strong results. Continue with current management practices and monitor for any pest or disease issues.", ndvi)
				case ndvi > 0.4:
					return fmt.Sprintf("Your NDVI is %.2f, showing good vegetation cover. To improve further, consider: 1) Increasing organic matter through composting, 2) Implementing better water management, 3) Adding nitrogen-fixing cover crops.", ndvi)
				case ndvi > 0.2:
					return fmt.Sprintf("Your NDVI is %.2f, indicating fair vegetation health. Action needed: 1) Implement cover cropping, 2) Apply organic mulch 5-10cm thick, 3) Test and amend soil pH, 4) Ensure adequate irrigation.", ndvi)
				default:
					return fmt.Sprintf("ALERT: Your NDVI is %.2f, showing critical vegetation stress. Immediate actions: 1) Increase irrigation frequency, 2) Add organic matter and compost, 3) Consider replanting with drought-resistant species, 4) Consult with an agronomist.", ndvi)
				}
			}
		}
		return `NDVI (Normalized Difference Vegetation Index) is a key indicator of vegetation health.

Scale interpretation:
* 0.6 to 1.0 = Excellent (dense, healthy vegetation)
* 0.4 to 0.6 = Good (moderate, healthy cover)
* 0.2 to 0.4 = Fair (sparse or stressed vegetation)
* Below 0.2 = Poor/Critical (severe stress or bare soil)

Higher values indicate healthier, denser vegetation. Select a project to see your specific NDVI analysis and recommendations.`

	case strings.Contains(lower, "soil"):
		if strings.Contains(lower, "moisture") {
			return `Soil moisture is critical for plant growth and restoration success.

Optimal ranges:
* 40-60% = Ideal for most crops and restoration species
* 30-40% = Acceptable but may need supplemental irrigation
* Below 30% = Plants experiencing water stress
* Above 70% = Risk of waterlogging and root diseases

Improvement strategies:
1. Apply 5-10cm organic mulch to retain moisture
2. Install drip irrigation systems for efficiency
3. Add compost to improve water-holding capacity
4. Plant deep-rooted cover crops
5. Create swales and berms to capture runoff`
		}
		return `Soil health is the foundation of successful land restoration.

Key indicators:
* pH level: 6.0-7.5 optimal for most species
* Organic matter: Target 3-5% or higher
* Moisture: 40-60% for active growth
* Structure: Good aggregation, drainage, and aeration
* Nutrients: Adequate N, P, K levels

Improvement plan:
1. Test soil (pH, nutrients, organic matter)
2. Add compost or well-rotted manure (2-4 tons/hectare)
3. Use cover crops (legumes fix nitrogen)
4. Minimize soil disturbance and tillage
5. Apply organic mulch (conserves moisture, adds nutrients)
6. Monitor progress with annual testing`

	case containsAny(lower, "plant", "season", "when", "timing"):
		switch now.Month() {
		case time.March, time.April, time.May:
			return `OPTIMAL PLANTING SEASON: Long Rains (March-May)

This is THE BEST time for planting in Kenya!

Recommended actions:
* Plant indigenous tree species NOW
* Establish soil conservation structures (terraces, bunds)
* Maximize seedling establishment
* Prepare for 6-8 weeks of optimal growing conditions
* Priority species: Acacia, Grevillea, Neem, indigenous fruits

Success tips:
1. Plant at start of rains (not during heavy downpours)
2. Dig holes 60x60x60cm, fill with topsoil + compost
3. Space trees 3-4 meters apart
4. Stake tall seedlings
5. Apply mulch around base (keep clear of stem)`
		case time.October, time.November, time.December:
			return `SECONDARY PLANTING WINDOW: Short Rains (October-December)

Good for hardy, drought-resistant species.

Recommended species:
* Acacia varieties
* Grevillea robusta
* Moringa oleifera
* Drought-adapted indigenous species

Best practices:
1. Focus on drought-resistant varieties
2. Prepare irrigation backup
3. Apply thick mulch (10cm) for moisture retention
4. Monitor seedlings closely (short rains less reliable)
5. Water daily for first 2 weeks if rains insufficient

This window is shorter and less predictable than long rains.`
		default:
			return `CURRENT STATUS: Dry Season

NOT recommended for planting new seedlings.

Focus activities:
* Maintain and water established plants
* Prepare planting sites for next season
* Build soil conservation structures
* Source quality seedlings
* Test and amend soil
* Clear invasive species
* Plan restoration strategy

Next planting windows:
* Primary: March-May (Long Rains) - BEST
* Secondary: October-December (Short Rains) - Good

Use this time to prepare thoroughly for successful planting when rains arrive.`
		}

	case containsAny(lower, "restore", "technique", "how", "improve", "help"):
		return `COMPREHENSIVE RESTORATION STRATEGIES

1. SOIL CONSERVATION
   * Build contour terraces on slopes over 15%
   * Establish grass strips along contours
   * Plant cover crops (legumes, grasses)
   * Apply mulch (5-10cm) to prevent erosion
   * Create stone bunds or gabions

2. WATER MANAGEMENT
   * Install rainwater harvesting (tanks, ponds)
   * Dig infiltration ditches along contours
   * Create swales to slow runoff
   * Use drip irrigation for efficiency
   * Implement zai pits in degraded areas

3. VEGETATION ESTABLISHMENT
   * Use indigenous species (adapted to local conditions)
   * Mix trees, shrubs, and grasses
   * Plant in suitable seasons (March-May best)
   * Space appropriately (3-4m for trees)
   * Succession planting (pioneer species first)

4. MONITORING & ADAPTATION
   * Track NDVI monthly
   * Monitor soil health quarterly
   * Measure tree growth and survival
   * Record rainfall and weather
   * Adjust strategies based on data

What specific aspect would you like to explore in detail?`

	case containsAny(lower, "data", "interpret", "understand", "mean", "explain"):
		return `DATA INTERPRETATION GUIDE

Key metrics I monitor:

VEGETATION HEALTH (NDVI)
* Measures photosynthetic activity
* 0.6+ = Excellent restoration progress
* 0.4-0.6 = Good, on track
* 0.2-0.4 = Fair, needs intervention
* Below 0.2 = Critical, immediate action

SOIL METRICS
* Moisture: 40-60% optimal
* pH: 6.0-7.5 for most species
* Organic matter: Target 3-5%
* Erosion risk: Monitor after heavy rains

CLIMATE DATA
* Temperature: Affects growth rates
* Rainfall: Critical for establishment
* Humidity: Influences disease risk
* Solar radiation: Drives photosynthesis

TRENDS TO WATCH
* Improving NDVI = Restoration working
* Declining NDVI = Investigate causes
* Seasonal patterns = Normal variation
* Extreme events = May require intervention

Share your specific data for detailed analysis and recommendations!`

	case containsAny(lower, "hello", "hi", "hey", "greet"):
		projectNote := ""
		if contextInfo != "" {
			projectNote = "\n\nI can see you're working on a project. I can help analyze its data and provide specific recommendations!"
		}
		return fmt.Sprintf(`Hello! I'm RegenAI, your intelligent land restoration assistant.

I can help you with:
* Vegetation health analysis (NDVI interpretation)
* Soil health assessment and management
* Climate pattern analysis and seasonal planning
* Data interpretation and trend analysis
* Restoration technique recommendations
* Species selection guidance%s

What would you like to know about your restoration project?`, projectNote)

	case strings.Contains(lower, "thank"):
		return "You're welcome! I'm here to support your restoration efforts. Feel free to ask anything about your projects, data, or best practices. Together we can restore degraded lands!"

	default:
		return `I'm your land restoration AI assistant!

I can help with:
* VEGETATION: Analyze NDVI data, interpret trends, diagnose issues
* SOIL: Assess health, recommend amendments, improve fertility
* CLIMATE: Understand patterns, plan seasonal activities
* DATA: Interpret metrics, identify trends, track progress
* TECHNIQUES: Suggest strategies, select species, optimize methods

Popular questions:
* "What is my current NDVI?"
* "When should I plant?"
* "How can I improve soil health?"
* "What do my monitoring metrics mean?"
* "What restoration techniques work best?"

Please select a project from the dropdown, then ask me anything specific about your data or restoration needs!`
	}
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// Message answers a user's question and records the exchange. The
// project, when given, must already be ownership-checked by the caller.
func (s *ChatService) Message(userID uint, project *models.Project, message string) (string, error) {
	ctx := s.buildContext(userID, project)
	contextInfo := ctx.contextPrompt()

	response := s.queryModels(message, contextInfo)
	if response == "" {
		response = FallbackResponse(message, contextInfo, time.Now())
	}

	ctxJSON, _ := json.Marshal(ctx)
	msg := &models.ChatMessage{
		UserID:    userID,
		Message:   message,
		Response:  response,
		Context:   string(ctxJSON),
		CreatedAt: time.Now(),
	}
	if project != nil {
		msg.ProjectID = &project.ID
	}
	if err := s.db.Create(msg).Error; err != nil {
		return response, err
	}
	return response, nil
}

// History returns the user's latest exchanges in chronological order,
// optionally scoped to one project. The newest rows are fetched first so
// the limit trims old conversation, not new.
func (s *ChatService) History(userID uint, projectID *uint, limit int) ([]models.ChatMessage, error) {
	if limit <= 0 {
		limit = 20
	}
	q := s.db.Where("user_id = ?", userID)
	if projectID != nil {
		q = q.Where("project_id = ?", *projectID)
	}
	var msgs []models.ChatMessage
	if err := q.Order("created_at DESC").Limit(limit).Find(&msgs).Error; err != nil {
		return nil, err
	}
	for i, j := 0, len(msgs)-1; i < j; i, j = i+1, j-1 {
		msgs[i], msgs[j] = msgs[j], msgs[i]
	}
	return msgs, nil
}

func (s *ChatService) Clear(userID uint, projectID *uint) error {
	q := s.db.Where("user_id = ?", userID)
	if projectID != nil {
		q = q.Where("project_id = ?", *projectID)
	}
	return q.Delete(&models.ChatMessage{}).Error
}

// Suggestions returns starter prompts, promoting urgent ones when the
// selected project is struggling.
func (s *ChatService) Suggestions(project *models.Project) []string {
	suggestions := []string{
		"What does my current NDVI tell me?",
		"When is the best time to plant?",
		"How can I improve soil health?",
		"What restoration techniques should I use?",
	}

	if project != nil {
		var rec models.MonitoringRecord
		if err := s.db.Where("project_id = ?", project.ID).Order("recorded_at DESC").First(&rec).Error; err == nil && rec.NDVI < 0.4 {
			suggestions = append([]string{"Why is my vegetation health low?"}, suggestions...)
		}
		if project.Degradation == models.DegradationSevere || project.Degradation == models.DegradationCritical {
			suggestions = append([]string{"What emergency actions should I take?"}, suggestions...)
		}
	}

	if len(suggestions) > 5 {
		suggestions = suggestions[:5]
	}
	return suggestions
}
