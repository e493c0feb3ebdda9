package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync/atomic"
	"testing"

	"sourcexpet_admin_v1/internal/api/dto"
	"sourcexpet_admin_v1/internal/model"
)

// ==================== 测试辅助 ====================

// fillValidDraft 填满全部必填字段
func fillValidDraft(sess *FormSession) {
	sess.SetField("name", "Dog Leash")
	sess.SetField("category", "Pet Supplies")
	sess.SetField("price", "19.99")

	sess.mu.Lock()
	sess.draft.ProductImageUrl = "https://cdn/p.png"
	sess.mu.Unlock()
}

// catalogStub 目录服务桩，统计请求次数
type catalogStub struct {
	requests   int64
	createCode int
	updateCode int
}

func (s *catalogStub) handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&s.requests, 1)

		var draft model.ProductDraft
		json.NewDecoder(r.Body).Decode(&draft)

		switch {
		case r.Method == http.MethodPost:
			if s.createCode != 0 && s.createCode != http.StatusCreated {
				w.WriteHeader(s.createCode)
				return
			}
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusCreated)
			json.NewEncoder(w).Encode(dto.ProductRecord{ID: 42, ProductDraft: draft})
		case r.Method == http.MethodPut:
			if s.updateCode != 0 && s.updateCode != http.StatusOK {
				w.WriteHeader(s.updateCode)
				return
			}
			parts := strings.Split(r.URL.Path, "/")
			id, _ := strconv.ParseInt(parts[len(parts)-1], 10, 64)
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(dto.ProductRecord{ID: id, ProductDraft: draft})
		}
	})
}

func newSubmitFixture(t *testing.T, stub *catalogStub) (*SubmitService, *FormService, *httptest.Server) {
	t.Helper()
	ts := httptest.NewServer(stub.handler())
	t.Cleanup(ts.Close)

	catalog := NewCatalogClient(&CatalogClientConfig{BaseURL: ts.URL})
	return NewSubmitService(catalog), NewFormService(catalog), ts
}

// ==================== 创建提交 ====================

func TestSubmitCreate_RejectedWithoutNetwork(t *testing.T) {
	stub := &catalogStub{}
	submit, form, _ := newSubmitFixture(t, stub)
	sess := form.CreateSession()

	outcome, err := submit.SubmitCreate(context.Background(), sess)
	if err != nil {
		t.Fatalf("提交出错: %v", err)
	}
	if outcome.Status != OutcomeRejected {
		t.Fatalf("status = %s, want rejected", outcome.Status)
	}
	if len(outcome.Errors) != 4 {
		t.Errorf("错误数量 = %d, want 4: %v", len(outcome.Errors), outcome.Errors)
	}

	// 校验失败不发起任何网络调用
	if n := atomic.LoadInt64(&stub.requests); n != 0 {
		t.Errorf("请求次数 = %d, want 0", n)
	}

	// 状态机回到 idle，可以再次提交
	if sess.View().SubmitState != SubmitIdle {
		t.Error("rejected 后状态应回到 idle")
	}
}

func TestSubmitCreate_Success(t *testing.T) {
	stub := &catalogStub{}
	submit, form, _ := newSubmitFixture(t, stub)
	sess := form.CreateSession()
	fillValidDraft(sess)
	oldPkg := sess.Draft().PackageNumber

	outcome, err := submit.SubmitCreate(context.Background(), sess)
	if err != nil {
		t.Fatalf("提交出错: %v", err)
	}
	if outcome.Status != OutcomeCreated {
		t.Fatalf("status = %s, want created: %+v", outcome.Status, outcome)
	}
	if outcome.ProductID != 42 {
		t.Errorf("productId = %d, want 42", outcome.ProductID)
	}
	if outcome.Redirect != "/" {
		t.Errorf("redirect = %q, want /", outcome.Redirect)
	}

	// 成功后草稿重置为空白并分配新包裹编号
	view := sess.View()
	if view.Draft.Name != "" || view.Draft.ProductImageUrl != "" {
		t.Errorf("成功后草稿应重置: %+v", view.Draft)
	}
	if view.Draft.PackageNumber == "" || view.Draft.PackageNumber == oldPkg {
		t.Errorf("应分配新包裹编号, old=%s new=%s", oldPkg, view.Draft.PackageNumber)
	}
	if len(view.Errors) != 0 {
		t.Errorf("成功后错误状态应清空: %v", view.Errors)
	}
	if view.SubmitState != SubmitIdle {
		t.Error("提交结束后状态应回到 idle")
	}
}

func TestSubmitCreate_ServerFailure(t *testing.T) {
	stub := &catalogStub{createCode: http.StatusInternalServerError}
	submit, form, _ := newSubmitFixture(t, stub)
	sess := form.CreateSession()
	fillValidDraft(sess)
	oldPkg := sess.Draft().PackageNumber

	outcome, err := submit.SubmitCreate(context.Background(), sess)
	if err != nil {
		t.Fatalf("提交出错: %v", err)
	}
	if outcome.Status != OutcomeFailed {
		t.Fatalf("status = %s, want failed", outcome.Status)
	}
	if outcome.Reason == "" {
		t.Error("failed 结果应携带原因")
	}

	// 失败时草稿原样保留，不做本地乐观变更
	draft := sess.Draft()
	if draft.Name != "Dog Leash" || draft.PackageNumber != oldPkg {
		t.Errorf("失败后草稿不应改动: %+v", draft)
	}
	if sess.View().SubmitState != SubmitIdle {
		t.Error("失败后状态应回到 idle，允许重新提交")
	}
}

// ==================== 更新提交 ====================

func TestSubmitUpdate_Success(t *testing.T) {
	stub := &catalogStub{}
	submit, form, _ := newSubmitFixture(t, stub)

	sess := form.CreateSession()
	sess.Mode = ModeEdit
	sess.ProductID = 7
	fillValidDraft(sess)
	oldPkg := sess.Draft().PackageNumber

	outcome, err := submit.SubmitUpdate(context.Background(), sess)
	if err != nil {
		t.Fatalf("提交出错: %v", err)
	}
	if outcome.Status != OutcomeUpdated {
		t.Fatalf("status = %s, want updated", outcome.Status)
	}
	if outcome.ProductID != 7 {
		t.Errorf("productId = %d, want 7", outcome.ProductID)
	}
	if outcome.Redirect != "/" {
		t.Errorf("redirect = %q, want /", outcome.Redirect)
	}

	// 更新成功后草稿不重置，包裹编号保持不变
	draft := sess.Draft()
	if draft.Name != "Dog Leash" {
		t.Error("更新成功后草稿不应重置")
	}
	if draft.PackageNumber != oldPkg {
		t.Errorf("包裹编号应保持 %s, got %s", oldPkg, draft.PackageNumber)
	}
}

// ==================== 并发保护 ====================

func TestSubmit_InFlight(t *testing.T) {
	stub := &catalogStub{}
	submit, form, _ := newSubmitFixture(t, stub)
	sess := form.CreateSession()
	fillValidDraft(sess)

	sess.mu.Lock()
	sess.submitState = SubmitSubmitting
	sess.mu.Unlock()

	if _, err := submit.SubmitCreate(context.Background(), sess); err != ErrSubmitInFlight {
		t.Errorf("提交中再次提交应返回 ErrSubmitInFlight, got %v", err)
	}
	if n := atomic.LoadInt64(&stub.requests); n != 0 {
		t.Errorf("被拒绝的提交不应发请求, count = %d", n)
	}
}
