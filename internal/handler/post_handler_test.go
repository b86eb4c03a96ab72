package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/atelierhq/internal/db"
	"github.com/gin-gonic/gin"
)

// newAdminTestEngine wires the admin content routes behind a stub guard that
// attaches a real admin row, so handlers that read CurrentAdmin see the same
// shape the middleware produces.
func newAdminTestEngine(t *testing.T) (*API, *gin.Engine, *db.AdminUser) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	gdb, cleanup := setupHandlerTestDB(t)
	t.Cleanup(cleanup)

	api := NewAPI(gdb, nil)
	user := signupAdmin(t, api, "maya@example.com")

	engine := gin.New()
	engine.Use(func(c *gin.Context) {
		c.Set(adminUserCtx, user)
	})

	engine.GET("/admin/api/posts", api.ListPosts)
	engine.GET("/admin/api/posts/:id", api.GetPost)
	engine.POST("/admin/api/posts", api.CreatePost)
	engine.PUT("/admin/api/posts/:id", api.UpdatePost)
	engine.DELETE("/admin/api/posts/:id", api.DeletePost)

	engine.GET("/admin/api/projects", api.AdminListProjects)
	engine.GET("/admin/api/projects/:id", api.AdminGetProject)
	engine.DELETE("/admin/api/projects/:id", api.AdminDeleteProject)

	return api, engine, user
}

func createPost(t *testing.T, engine *gin.Engine, title string) db.Post {
	t.Helper()
	payload, _ := json.Marshal(map[string]string{
		"title":   title,
		"content": "Body copy.",
		"tags":    "Branding, Web Design",
		"status":  db.PostStatusDraft,
	})
	recorder := doJSON(engine, http.MethodPost, "/admin/api/posts", payload)
	if recorder.Code != http.StatusOK {
		t.Fatalf("create expected 200, got %d: %s", recorder.Code, recorder.Body.String())
	}

	var body struct {
		Post db.Post `json:"post"`
	}
	if err := json.Unmarshal(recorder.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode create response: %v", err)
	}
	return body.Post
}

func TestAdminPostCreateAndEditForm(t *testing.T) {
	_, engine, user := newAdminTestEngine(t)

	post := createPost(t, engine, "Studio Notes")
	if post.Slug != "studio-notes" {
		t.Fatalf("expected derived slug, got %q", post.Slug)
	}
	if post.AuthorID != user.ID {
		t.Fatalf("expected author %q, got %q", user.ID, post.AuthorID)
	}
	if len(post.Tags) != 2 || post.Tags[0] != "Branding" {
		t.Fatalf("unexpected tags %v", post.Tags)
	}

	recorder := doJSON(engine, http.MethodGet, fmt.Sprintf("/admin/api/posts/%d", post.ID), nil)
	if recorder.Code != http.StatusOK {
		t.Fatalf("get expected 200, got %d", recorder.Code)
	}
	var body struct {
		Form struct {
			Tags string `json:"tags"`
		} `json:"form"`
	}
	if err := json.Unmarshal(recorder.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode get response: %v", err)
	}
	if body.Form.Tags != "Branding, Web Design" {
		t.Fatalf("expected joined tags for the form, got %q", body.Form.Tags)
	}
}

func TestAdminPostUpdate(t *testing.T) {
	_, engine, _ := newAdminTestEngine(t)

	post := createPost(t, engine, "Studio Notes")

	payload, _ := json.Marshal(map[string]string{
		"title":  "Studio Notes",
		"slug":   post.Slug,
		"tags":   "Branding",
		"status": db.PostStatusPublished,
	})
	recorder := doJSON(engine, http.MethodPut, fmt.Sprintf("/admin/api/posts/%d", post.ID), payload)
	if recorder.Code != http.StatusOK {
		t.Fatalf("update expected 200, got %d: %s", recorder.Code, recorder.Body.String())
	}

	var body struct {
		Post db.Post `json:"post"`
	}
	if err := json.Unmarshal(recorder.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode update response: %v", err)
	}
	if body.Post.Status != db.PostStatusPublished {
		t.Fatalf("expected published status, got %q", body.Post.Status)
	}
}

func TestDeletePostTwoPhase(t *testing.T) {
	_, engine, _ := newAdminTestEngine(t)

	post := createPost(t, engine, "Studio Notes")
	target := fmt.Sprintf("/admin/api/posts/%d", post.ID)

	recorder := doJSON(engine, http.MethodDelete, target, nil)
	if recorder.Code != http.StatusAccepted {
		t.Fatalf("first delete expected 202, got %d: %s", recorder.Code, recorder.Body.String())
	}
	var armed struct {
		Armed bool `json:"armed"`
	}
	if err := json.Unmarshal(recorder.Body.Bytes(), &armed); err != nil {
		t.Fatalf("failed to decode arm response: %v", err)
	}
	if !armed.Armed {
		t.Fatalf("expected armed response, got %s", recorder.Body.String())
	}

	// The arming call must not delete anything.
	if recorder := doJSON(engine, http.MethodGet, target, nil); recorder.Code != http.StatusOK {
		t.Fatalf("post should survive arming, got %d", recorder.Code)
	}

	if recorder := doJSON(engine, http.MethodDelete, target, nil); recorder.Code != http.StatusOK {
		t.Fatalf("second delete expected 200, got %d", recorder.Code)
	}
	if recorder := doJSON(engine, http.MethodGet, target, nil); recorder.Code != http.StatusNotFound {
		t.Fatalf("expected 404 after delete, got %d", recorder.Code)
	}
}

func TestDeletePostSwitchingTargetsRearms(t *testing.T) {
	_, engine, _ := newAdminTestEngine(t)

	first := createPost(t, engine, "First Note")
	second := createPost(t, engine, "Second Note")

	if recorder := doJSON(engine, http.MethodDelete, fmt.Sprintf("/admin/api/posts/%d", first.ID), nil); recorder.Code != http.StatusAccepted {
		t.Fatalf("arming first expected 202, got %d", recorder.Code)
	}

	// Confirming a different row arms that row instead of committing.
	if recorder := doJSON(engine, http.MethodDelete, fmt.Sprintf("/admin/api/posts/%d", second.ID), nil); recorder.Code != http.StatusAccepted {
		t.Fatalf("switching targets expected 202, got %d", recorder.Code)
	}
	if recorder := doJSON(engine, http.MethodGet, fmt.Sprintf("/admin/api/posts/%d", first.ID), nil); recorder.Code != http.StatusOK {
		t.Fatalf("first post should still exist, got %d", recorder.Code)
	}
	if recorder := doJSON(engine, http.MethodGet, fmt.Sprintf("/admin/api/posts/%d", second.ID), nil); recorder.Code != http.StatusOK {
		t.Fatalf("second post should still exist, got %d", recorder.Code)
	}
}

func TestDeletePostUnknownID(t *testing.T) {
	_, engine, _ := newAdminTestEngine(t)

	if recorder := doJSON(engine, http.MethodDelete, "/admin/api/posts/9999", nil); recorder.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown post, got %d", recorder.Code)
	}
	if recorder := doJSON(engine, http.MethodDelete, "/admin/api/posts/not-a-number", nil); recorder.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad id, got %d", recorder.Code)
	}
}

func TestAdminPostList(t *testing.T) {
	_, engine, _ := newAdminTestEngine(t)

	createPost(t, engine, "Draft Note")

	recorder := doJSON(engine, http.MethodGet, "/admin/api/posts", nil)
	if recorder.Code != http.StatusOK {
		t.Fatalf("list expected 200, got %d", recorder.Code)
	}
	var body struct {
		Posts []db.Post `json:"posts"`
	}
	if err := json.Unmarshal(recorder.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode list response: %v", err)
	}
	if len(body.Posts) != 1 {
		t.Fatalf("expected one post, got %d", len(body.Posts))
	}
}
