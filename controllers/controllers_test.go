package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/pledgecity/backend/database"
	"github.com/pledgecity/backend/middleware"
	"github.com/pledgecity/backend/models"
)

var testRouter *gin.Engine

func setupDatabase() {
	req := testcontainers.ContainerRequest{
		Image:        "postgres:13-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "user",
			"POSTGRES_PASSWORD": "password",
			"POSTGRES_DB":       "testdb",
		},
		WaitingFor: wait.ForListeningPort("5432/tcp").WithStartupTimeout(60 * time.Second),
	}

	postgresContainer, err := testcontainers.GenericContainer(context.Background(), testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		log.Fatalf("failed to start container: %s", err)
	}

	host, _ := postgresContainer.Host(context.Background())
	port, _ := postgresContainer.MappedPort(context.Background(), "5432")

	dsn := fmt.Sprintf("host=%s port=%s user=user password=password dbname=testdb sslmode=disable", host, port.Port())

	for i := 0; i < 5; i++ {
		database.DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		})
		if err == nil {
			break
		}
		time.Sleep(2 * time.Second)
	}

	if database.DB == nil {
		log.Fatalf("failed to connect to database after multiple attempts")
	}

	database.Migrate()
}

// setupRouter mirrors the route table in main.go.
func setupRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	auth := router.Group("/api/auth")
	{
		auth.POST("/register", Register)
		auth.POST("/login", Login)
		auth.POST("/logout", middleware.JWTAuth(), Logout)
		auth.GET("/me", middleware.JWTAuth(), Me)
	}

	public := router.Group("/api")
	public.Use(middleware.OptionalJWTAuth())
	{
		public.GET("/threads", GetThreads)
		public.GET("/reverse", GetReverseRequests)
	}

	api := router.Group("/api")
	api.Use(middleware.JWTAuth())
	{
		api.POST("/threads", CreateThread)
		api.DELETE("/threads/:id", DeleteThread)
		api.POST("/threads/:id/pledges", CreateThreadPledge)
		api.POST("/threads/:id/commit-current", CommitCurrent)
		api.POST("/threads/:id/comments", CreateThreadComment)

		api.POST("/reverse", CreateReverseRequest)
		api.POST("/reverse/:id/bids", CreateBid)
		api.POST("/reverse/:id/pledges", CreateReversePledge)
		api.POST("/reverse/:id/comments", CreateReverseComment)
		api.POST("/reverse/:id/close", CloseReverseRequest)

		api.GET("/challenges", GetChallenges)
		api.POST("/challenges", CreateChallenge)
		api.POST("/challenges/:id/respond", RespondToChallenge)
		api.POST("/challenges/:id/accept-counter", AcceptCounter)

		api.GET("/groups", GetGroups)
		api.POST("/groups", CreateGroup)
		api.POST("/groups/:id/invite", InviteToGroup)
		api.POST("/groups/:id/approve", ApproveInvite)

		api.GET("/balance", GetBalance)
		api.POST("/balance/:id/declare-received", DeclareReceived)
	}

	return router
}

func TestMain(m *testing.M) {
	setupDatabase()
	testRouter = setupRouter()
	m.Run()
}

func clearDatabase() {
	tables, _ := database.DB.Migrator().GetTables()
	for _, table := range tables {
		database.DB.Exec(fmt.Sprintf("TRUNCATE TABLE %s RESTART IDENTITY CASCADE;", table))
	}
}

func doJSON(method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	testRouter.ServeHTTP(w, req)
	return w
}

func parseBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func registerUser(t *testing.T, username string) string {
	w := doJSON(http.MethodPost, "/api/auth/register", "", gin.H{
		"username": username,
		"password": "secret123",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return parseBody(t, w)["token"].(string)
}

func futureDeadline() string {
	return time.Now().AddDate(0, 1, 0).Format("2006-01-02")
}

func createThread(t *testing.T, token string, target float64, extra gin.H) uint {
	body := gin.H{
		"title":         "Bike ride to Santos",
		"description":   "Leaving 6am on Sunday, posting proof along the way.",
		"target_amount": target,
		"deadline":      futureDeadline(),
	}
	for k, v := range extra {
		body[k] = v
	}

	w := doJSON(http.MethodPost, "/api/threads", token, body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	thread := parseBody(t, w)["thread"].(map[string]interface{})
	return uint(thread["id"].(float64))
}

func TestRegisterLoginMe(t *testing.T) {
	defer clearDatabase()

	token := registerUser(t, "lucas")

	// Duplicate username is rejected.
	w := doJSON(http.MethodPost, "/api/auth/register", "", gin.H{"username": "lucas", "password": "secret123"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(http.MethodPost, "/api/auth/login", "", gin.H{"username": "lucas", "password": "secret123"})
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(http.MethodPost, "/api/auth/login", "", gin.H{"username": "lucas", "password": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(http.MethodGet, "/api/auth/me", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	user := parseBody(t, w)["user"].(map[string]interface{})
	assert.Equal(t, "lucas", user["username"])

	w = doJSON(http.MethodGet, "/api/auth/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(http.MethodPost, "/api/auth/logout", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestMissionPledgeLifecycle(t *testing.T) {
	defer clearDatabase()

	lucas := registerUser(t, "lucas")
	ana := registerUser(t, "ana")
	rafa := registerUser(t, "rafa")

	threadID := createThread(t, lucas, 300, nil)
	path := fmt.Sprintf("/api/threads/%d/pledges", threadID)

	// Anonymous listing sees the open mission.
	w := doJSON(http.MethodGet, "/api/threads", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	threads := parseBody(t, w)["threads"].([]interface{})
	require.Len(t, threads, 1)
	assert.Equal(t, "open", threads[0].(map[string]interface{})["status"])

	// Anonymous pledging is rejected.
	w = doJSON(http.MethodPost, path, "", gin.H{"amount": 50.0})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(http.MethodPost, path, ana, gin.H{"amount": 150.0})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	// Non-positive amounts fail validation.
	w = doJSON(http.MethodPost, path, rafa, gin.H{"amount": 0.0})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(http.MethodPost, path, rafa, gin.H{"amount": 200.0})
	require.Equal(t, http.StatusCreated, w.Code)

	// 150 + 200 >= 300: the mission is funded and rejects further pledges.
	w = doJSON(http.MethodGet, "/api/threads", "", nil)
	threads = parseBody(t, w)["threads"].([]interface{})
	entry := threads[0].(map[string]interface{})
	assert.Equal(t, "funded", entry["status"])
	assert.Equal(t, 350.0, entry["pledged_total"])

	w = doJSON(http.MethodPost, path, ana, gin.H{"amount": 10.0})
	assert.Equal(t, http.StatusConflict, w.Code)

	// Creator's ledger shows both pledges to receive.
	w = doJSON(http.MethodGet, "/api/balance", lucas, nil)
	require.Equal(t, http.StatusOK, w.Code)
	balance := parseBody(t, w)
	assert.Equal(t, 0.0, balance["owes"])
	assert.Equal(t, 350.0, balance["to_receive"])

	// Supporter's ledger shows the debt.
	w = doJSON(http.MethodGet, "/api/balance", ana, nil)
	balance = parseBody(t, w)
	assert.Equal(t, 150.0, balance["owes"])

	// Only the payee can declare an entry received.
	entries := balance["entries"].([]interface{})
	require.Len(t, entries, 1)
	entryID := entries[0].(map[string]interface{})["id"].(string)

	w = doJSON(http.MethodPost, "/api/balance/"+entryID+"/declare-received", ana, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doJSON(http.MethodPost, "/api/balance/"+entryID+"/declare-received", lucas, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	// Declaring twice is a no-op success.
	w = doJSON(http.MethodPost, "/api/balance/"+entryID+"/declare-received", lucas, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	received := parseBody(t, w)["entry"].(map[string]interface{})
	assert.Equal(t, "received", received["status"])

	w = doJSON(http.MethodGet, "/api/balance", lucas, nil)
	balance = parseBody(t, w)
	assert.Equal(t, 200.0, balance["to_receive"])

	// Unknown entry IDs are a 404.
	w = doJSON(http.MethodPost, "/api/balance/pledge-999/declare-received", lucas, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCommitCurrentFreezesTotal(t *testing.T) {
	defer clearDatabase()

	lucas := registerUser(t, "lucas")
	ana := registerUser(t, "ana")

	threadID := createThread(t, lucas, 1000, nil)
	pledgePath := fmt.Sprintf("/api/threads/%d/pledges", threadID)
	commitPath := fmt.Sprintf("/api/threads/%d/commit-current", threadID)

	w := doJSON(http.MethodPost, pledgePath, ana, gin.H{"amount": 150.0})
	require.Equal(t, http.StatusCreated, w.Code)

	// Only the creator can commit.
	w = doJSON(http.MethodPost, commitPath, ana, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doJSON(http.MethodPost, commitPath, lucas, nil)
	require.Equal(t, http.StatusOK, w.Code)

	// Committing again fails: the mission is no longer open.
	w = doJSON(http.MethodPost, commitPath, lucas, nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	// Committed missions reject new pledges.
	w = doJSON(http.MethodPost, pledgePath, ana, gin.H{"amount": 50.0})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = doJSON(http.MethodGet, "/api/threads", "", nil)
	threads := parseBody(t, w)["threads"].([]interface{})
	assert.Equal(t, "committed_current", threads[0].(map[string]interface{})["status"])

	// The frozen total settles into the ledger.
	w = doJSON(http.MethodGet, "/api/balance", lucas, nil)
	balance := parseBody(t, w)
	assert.Equal(t, 150.0, balance["to_receive"])
}

func TestGroupAudienceVisibility(t *testing.T) {
	defer clearDatabase()

	lucas := registerUser(t, "lucas")
	ana := registerUser(t, "ana")
	rafa := registerUser(t, "rafa")

	w := doJSON(http.MethodPost, "/api/groups", lucas, gin.H{"name": "Cycling buddies"})
	require.Equal(t, http.StatusCreated, w.Code)
	group := parseBody(t, w)["group"].(map[string]interface{})
	groupID := uint(group["id"].(float64))

	createThread(t, lucas, 500, gin.H{"audience": "group", "group_id": groupID})

	// Non-members see nothing.
	w = doJSON(http.MethodGet, "/api/threads", ana, nil)
	assert.Len(t, parseBody(t, w)["threads"].([]interface{}), 0)

	// Outsiders cannot create group-scoped threads either.
	body := gin.H{
		"title": "sneaky", "description": "x", "target_amount": 10.0,
		"deadline": futureDeadline(), "audience": "group", "group_id": groupID,
	}
	w = doJSON(http.MethodPost, "/api/threads", ana, body)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Invite + approve makes ana a member; rafa stays outside.
	invitePath := fmt.Sprintf("/api/groups/%d/invite", groupID)
	approvePath := fmt.Sprintf("/api/groups/%d/approve", groupID)

	// Only the owner can invite.
	w = doJSON(http.MethodPost, invitePath, ana, gin.H{"username": "rafa"})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doJSON(http.MethodPost, invitePath, lucas, gin.H{"username": "ana"})
	require.Equal(t, http.StatusCreated, w.Code)

	// Approving without an invite fails.
	w = doJSON(http.MethodPost, approvePath, rafa, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(http.MethodPost, approvePath, ana, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(http.MethodGet, "/api/threads", ana, nil)
	assert.Len(t, parseBody(t, w)["threads"].([]interface{}), 1)

	w = doJSON(http.MethodGet, "/api/threads", rafa, nil)
	assert.Len(t, parseBody(t, w)["threads"].([]interface{}), 0)

	// Anonymous viewers never see group-scoped missions.
	w = doJSON(http.MethodGet, "/api/threads", "", nil)
	assert.Len(t, parseBody(t, w)["threads"].([]interface{}), 0)
}

func TestSpecificAudience(t *testing.T) {
	defer clearDatabase()

	lucas := registerUser(t, "lucas")
	ana := registerUser(t, "ana")
	rafa := registerUser(t, "rafa")

	createThread(t, lucas, 500, gin.H{"audience": "specific", "targets": []string{"ana"}})

	w := doJSON(http.MethodGet, "/api/threads", ana, nil)
	assert.Len(t, parseBody(t, w)["threads"].([]interface{}), 1)

	w = doJSON(http.MethodGet, "/api/threads", rafa, nil)
	assert.Len(t, parseBody(t, w)["threads"].([]interface{}), 0)

	w = doJSON(http.MethodGet, "/api/threads", lucas, nil)
	assert.Len(t, parseBody(t, w)["threads"].([]interface{}), 1)
}

func TestReverseAuctionFlow(t *testing.T) {
	defer clearDatabase()

	lucas := registerUser(t, "lucas")
	ana := registerUser(t, "ana")
	rafa := registerUser(t, "rafa")

	w := doJSON(http.MethodPost, "/api/reverse", lucas, gin.H{
		"title":       "Fix my fence",
		"description": "Wooden fence, two broken panels.",
		"seed_amount": 200.0,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	request := parseBody(t, w)["request"].(map[string]interface{})
	requestID := uint(request["id"].(float64))

	bidPath := fmt.Sprintf("/api/reverse/%d/bids", requestID)

	// The creator cannot bid on their own request.
	w = doJSON(http.MethodPost, bidPath, lucas, gin.H{"ask": 100.0})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	for _, bid := range []struct {
		token string
		ask   float64
	}{{ana, 50}, {rafa, 30}, {ana, 40}} {
		w = doJSON(http.MethodPost, bidPath, bid.token, gin.H{"ask": bid.ask})
		require.Equal(t, http.StatusCreated, w.Code)
	}

	w = doJSON(http.MethodGet, "/api/reverse", "", nil)
	requests := parseBody(t, w)["requests"].([]interface{})
	require.Len(t, requests, 1)
	lowest := requests[0].(map[string]interface{})["lowest_bid"].(map[string]interface{})
	assert.Equal(t, 30.0, lowest["ask"])

	// Pledges and comments attach while open.
	w = doJSON(http.MethodPost, fmt.Sprintf("/api/reverse/%d/pledges", requestID), ana, gin.H{"amount": 25.0})
	assert.Equal(t, http.StatusCreated, w.Code)
	w = doJSON(http.MethodPost, fmt.Sprintf("/api/reverse/%d/comments", requestID), rafa, gin.H{"body": "Can start Monday."})
	assert.Equal(t, http.StatusCreated, w.Code)

	// Only the creator closes; afterwards bids and pledges are rejected.
	closePath := fmt.Sprintf("/api/reverse/%d/close", requestID)
	w = doJSON(http.MethodPost, closePath, ana, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doJSON(http.MethodPost, closePath, lucas, nil)
	require.Equal(t, http.StatusOK, w.Code)
	lowest = parseBody(t, w)["lowest_bid"].(map[string]interface{})
	assert.Equal(t, 30.0, lowest["ask"])

	w = doJSON(http.MethodPost, closePath, lucas, nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = doJSON(http.MethodPost, bidPath, ana, gin.H{"ask": 20.0})
	assert.Equal(t, http.StatusConflict, w.Code)
	w = doJSON(http.MethodPost, fmt.Sprintf("/api/reverse/%d/pledges", requestID), ana, gin.H{"amount": 10.0})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestChallengeCounterEndToEnd(t *testing.T) {
	defer clearDatabase()

	ana := registerUser(t, "ana")
	lucas := registerUser(t, "lucas")
	rafa := registerUser(t, "rafa")

	w := doJSON(http.MethodPost, "/api/challenges", ana, gin.H{
		"challenged":   "lucas",
		"title":        "Cold shower week",
		"offer_amount": 100.0,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	challenge := parseBody(t, w)["challenge"].(map[string]interface{})
	challengeID := uint(challenge["id"].(float64))

	respondPath := fmt.Sprintf("/api/challenges/%d/respond", challengeID)
	acceptCounterPath := fmt.Sprintf("/api/challenges/%d/accept-counter", challengeID)

	// A bystander has no move to make.
	w = doJSON(http.MethodPost, respondPath, rafa, gin.H{"action": "accept"})
	assert.Equal(t, http.StatusForbidden, w.Code)

	// Challenged counters at 80.
	w = doJSON(http.MethodPost, respondPath, lucas, gin.H{"action": "counter", "counter_amount": 80.0})
	require.Equal(t, http.StatusOK, w.Code)
	challenge = parseBody(t, w)["challenge"].(map[string]interface{})
	assert.Equal(t, "countered", challenge["status"])

	// Challenged cannot accept their own counter.
	w = doJSON(http.MethodPost, acceptCounterPath, lucas, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doJSON(http.MethodPost, acceptCounterPath, ana, nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := parseBody(t, w)
	assert.Equal(t, 80.0, body["settled_amount"])

	// Re-responding to a settled challenge is an invalid-state error.
	w = doJSON(http.MethodPost, respondPath, lucas, gin.H{"action": "reject"})
	assert.Equal(t, http.StatusConflict, w.Code)

	// The committed amount lands in the ledger on both sides.
	w = doJSON(http.MethodGet, "/api/balance", ana, nil)
	balance := parseBody(t, w)
	assert.Equal(t, 80.0, balance["owes"])

	w = doJSON(http.MethodGet, "/api/balance", lucas, nil)
	balance = parseBody(t, w)
	assert.Equal(t, 80.0, balance["to_receive"])

	entries := balance["entries"].([]interface{})
	require.Len(t, entries, 1)
	assert.Equal(t, "challenge", entries[0].(map[string]interface{})["deal_type"])

	w = doJSON(http.MethodGet, "/api/challenges", lucas, nil)
	assert.Len(t, parseBody(t, w)["challenges"].([]interface{}), 1)
}

func TestDeleteThreadPermissions(t *testing.T) {
	defer clearDatabase()

	lucas := registerUser(t, "lucas")
	ana := registerUser(t, "ana")

	threadID := createThread(t, lucas, 500, nil)
	path := fmt.Sprintf("/api/threads/%d", threadID)

	w := doJSON(http.MethodDelete, path, ana, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doJSON(http.MethodDelete, path, lucas, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(http.MethodDelete, path, lucas, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	// Admins may delete anything.
	threadID = createThread(t, lucas, 500, nil)
	registerUser(t, "mod")
	database.DB.Model(&models.User{}).Where("username = ?", "mod").Update("is_admin", true)
	w = doJSON(http.MethodPost, "/api/auth/login", "", gin.H{"username": "mod", "password": "secret123"})
	modToken := parseBody(t, w)["token"].(string)

	w = doJSON(http.MethodDelete, fmt.Sprintf("/api/threads/%d", threadID), modToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}
