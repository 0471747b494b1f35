package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"nmjl-service/internal/api"
	"nmjl-service/internal/config"
	"nmjl-service/internal/repo"
	"nmjl-service/internal/service"
)

const cardJSON = `[
  {
    "Pattern ID": 1, "Hands_Key": "2025-1", "Section": "2025", "Line": 1,
    "Hand_Pattern": "222 0000 222 5555", "Hand_Description": "Any 2 suits", "Hand_Points": 25,
    "Groups": [
      {"Group": 1, "Constraint_Type": "pung", "Constraint_Values": 2, "Suit_Role": "any"},
      {"Group": 2, "Constraint_Type": "kong", "Constraint_Values": 0},
      {"Group": 3, "Constraint_Type": "pung", "Constraint_Values": 2, "Suit_Role": "second"},
      {"Group": 4, "Constraint_Type": "kong", "Constraint_Values": 5, "Suit_Role": "same_as:3"}
    ]
  },
  {
    "Pattern ID": 3, "Hands_Key": "run-3", "Section": "CONSECUTIVE RUN", "Line": 3,
    "Hand_Pattern": "123 456 789 NNNN R", "Hand_Points": 25,
    "Groups": [
      {"Group": "g1", "Constraint_Type": "sequence", "Constraint_Values": "1,2,3", "Suit_Role": "any"},
      {"Group": "g2", "Constraint_Type": "sequence", "Constraint_Values": "4,5,6", "Suit_Role": "second"},
      {"Group": "g3", "Constraint_Type": "sequence", "Constraint_Values": "7,8,9", "Suit_Role": "third"},
      {"Group": "g4", "Constraint_Type": "kong", "Constraint_Values": "north"},
      {"Group": "g5", "Constraint_Type": "single", "Constraint_Values": "red", "Jokers_Allowed": false}
    ]
  }
]`

type envelope struct {
	Code int             `json:"code"`
	Data json.RawMessage `json:"data"`
	Msg  string          `json:"msg"`
}

func newRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	path := filepath.Join(t.TempDir(), "card.json")
	require.NoError(t, os.WriteFile(path, []byte(cardJSON), 0o600))

	config.GlobalConfig = &config.Config{
		JWT:   config.JWTConfig{Secret: "test-secret", Expire: 1},
		Admin: config.AdminSeedConfig{DefaultUsername: "curator", DefaultPassword: "Curator@123"},
		Card:  config.CardConfig{TemplatesPath: path, Year: 2025, Ceiling: 200, WarnThreshold: 50},
	}

	db, err := repo.Open(config.DatabaseConfig{
		Driver: "sqlite",
		DSN:    "file:" + t.Name() + "?mode=memory&cache=shared",
	})
	require.NoError(t, err)

	services := service.NewContainer(db, nil)
	require.NoError(t, services.Start(context.Background()))

	r := gin.New()
	api.RegisterRoutes(r, services)
	return r
}

func do(t *testing.T, r *gin.Engine, method, path string, body interface{}, token string) (int, envelope) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return w.Code, env
}

func TestPing(t *testing.T) {
	r := newRouter(t)
	code, env := do(t, r, http.MethodGet, "/ping", nil, "")
	require.Equal(t, http.StatusOK, code)
	require.JSONEq(t, `{"message":"pong"}`, string(env.Data))
}

func TestListTemplates(t *testing.T) {
	r := newRouter(t)
	code, env := do(t, r, http.MethodGet, "/nmjlService/v1/templates", nil, "")
	require.Equal(t, http.StatusOK, code)

	var data struct {
		Version string `json:"version"`
		Total   int    `json:"total"`
		Items   []struct {
			UniqueID string `json:"uniqueId"`
			Groups   []struct {
				Values string `json:"values"`
				Kind   string `json:"kind"`
			} `json:"groups"`
		} `json:"items"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	require.NotEmpty(t, data.Version)
	require.Equal(t, 2, data.Total)
	require.Equal(t, "2025-1 (222 0000 222 5555)", data.Items[0].UniqueID)
	require.Equal(t, "0", data.Items[0].Groups[1].Values)
	require.Equal(t, "literal", data.Items[0].Groups[1].Kind)
	require.Equal(t, "alternatives", data.Items[1].Groups[0].Kind)
}

func TestHandsEndpoints(t *testing.T) {
	r := newRouter(t)

	code, env := do(t, r, http.MethodGet, "/nmjlService/v1/hands?size=5&patternKey=2025-1", nil, "")
	require.Equal(t, http.StatusOK, code)
	var list struct {
		Total int64 `json:"total"`
		Items []struct {
			HandID string `json:"hand_id"`
		} `json:"items"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &list))
	require.Equal(t, int64(6), list.Total)
	require.Len(t, list.Items, 5)

	code, env = do(t, r, http.MethodGet, "/nmjlService/v1/hands/"+list.Items[0].HandID, nil, "")
	require.Equal(t, http.StatusOK, code)
	require.Contains(t, string(env.Data), `"total_tiles":14`)

	code, _ = do(t, r, http.MethodGet, "/nmjlService/v1/hands/nope", nil, "")
	require.Equal(t, http.StatusNotFound, code)

	code, _ = do(t, r, http.MethodGet, "/nmjlService/v1/hands?page=0", nil, "")
	require.Equal(t, http.StatusBadRequest, code)

	code, env = do(t, r, http.MethodGet, "/nmjlService/v1/runs/latest", nil, "")
	require.Equal(t, http.StatusOK, code)
	require.Contains(t, string(env.Data), `"totalHands":168`)
}

func TestSuggestEndpoint(t *testing.T) {
	r := newRouter(t)
	tiles := []string{"1D", "2D", "3D", "4C", "5C", "6C", "7B", "8B", "9B", "north", "north", "north", "north", "red"}

	code, env := do(t, r, http.MethodPost, "/nmjlService/v1/suggest", gin.H{"tiles": tiles}, "")
	require.Equal(t, http.StatusOK, code)
	var sug struct {
		HighestScore int `json:"highest_score"`
		Candidates   []struct {
			UniqueID string `json:"unique_id"`
		} `json:"candidates"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &sug))
	require.Equal(t, 14, sug.HighestScore)
	require.Len(t, sug.Candidates, 1)
	require.Equal(t, "CONSECUTIVE RUN-3 (123 456 789 NNNN R)", sug.Candidates[0].UniqueID)

	code, _ = do(t, r, http.MethodPost, "/nmjlService/v1/suggest", gin.H{"tiles": []string{"bogus"}}, "")
	require.Equal(t, http.StatusBadRequest, code)
}

func TestScoreEndpoint(t *testing.T) {
	r := newRouter(t)

	_, env := do(t, r, http.MethodGet, "/nmjlService/v1/hands?patternKey=run-3&size=1", nil, "")
	var list struct {
		Items []struct {
			HandID     string `json:"hand_id"`
			ExactTiles struct {
				RequiredTiles []string `json:"required_tiles"`
			} `json:"exact_tiles"`
		} `json:"items"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &list))
	require.Len(t, list.Items, 1)
	hand := list.Items[0]

	code, env := do(t, r, http.MethodPost, "/nmjlService/v1/score", gin.H{
		"tiles":  hand.ExactTiles.RequiredTiles[:9],
		"handId": hand.HandID,
	}, "")
	require.Equal(t, http.StatusOK, code)
	var res struct {
		Score   int      `json:"score"`
		Missing []string `json:"missing_tiles"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &res))
	require.Equal(t, 9, res.Score)
	require.Len(t, res.Missing, 5)

	code, _ = do(t, r, http.MethodPost, "/nmjlService/v1/score", gin.H{"tiles": []string{"1D"}}, "")
	require.Equal(t, http.StatusBadRequest, code)
}

func TestAdminRebuild(t *testing.T) {
	r := newRouter(t)

	code, _ := do(t, r, http.MethodPost, "/admin/catalog/rebuild", nil, "")
	require.Equal(t, http.StatusUnauthorized, code)

	code, _ = do(t, r, http.MethodPost, "/admin/auth/login", gin.H{"username": "curator", "password": "wrong"}, "")
	require.Equal(t, http.StatusUnauthorized, code)

	code, env := do(t, r, http.MethodPost, "/admin/auth/login", gin.H{"username": "curator", "password": "Curator@123"}, "")
	require.Equal(t, http.StatusOK, code)
	var login struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &login))
	require.NotEmpty(t, login.Token)

	code, env = do(t, r, http.MethodGet, "/admin/me", nil, login.Token)
	require.Equal(t, http.StatusOK, code)
	require.Contains(t, string(env.Data), `"username":"curator"`)

	_, before := do(t, r, http.MethodGet, "/nmjlService/v1/runs/latest", nil, "")
	code, env = do(t, r, http.MethodPost, "/admin/catalog/rebuild", nil, login.Token)
	require.Equal(t, http.StatusOK, code)
	require.Equal(t, "catalog rebuilt", env.Msg)

	var rebuilt struct {
		RunID string `json:"runId"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &rebuilt))
	require.NotContains(t, string(before.Data), rebuilt.RunID)
}
