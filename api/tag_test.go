package api

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"walletbook/config"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tagRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "created_at", "updated_at", "user_id", "name", "icon", "color", "is_visible"})
}

func TestTagHandler_List_HiddenFilteredByDefault(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()
	config.GlobalConfig = testAuthConfig()
	defer func() { config.GlobalConfig = nil }()

	now := time.Now()
	mock.ExpectQuery("SELECT .* FROM `transaction_tags`").
		WithArgs(uint(1), true).
		WillReturnRows(tagRows().AddRow(1, now, now, 1, "vacation", "plane", "#0284C7", true))

	// 每个标签附带打了它的交易数
	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `transactions`").
		WithArgs(uint(1)).
		WillReturnRows(sqlmock.NewRows([]string{"count(*)"}).AddRow(4))

	router := gin.New()
	router.GET("/tags", setUserID(1), NewTagHandler().List)

	req := httptest.NewRequest("GET", "/tags", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 200, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp["data"].([]interface{})
	require.Len(t, data, 1)
	first := data[0].(map[string]interface{})
	assert.InDelta(t, 4, first["transaction_count"].(float64), 0.001)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTagHandler_Update_Rename(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()
	config.GlobalConfig = testAuthConfig()
	defer func() { config.GlobalConfig = nil }()

	now := time.Now()
	mock.ExpectQuery("SELECT .* FROM `transaction_tags`").
		WithArgs(uint(3), uint(1)).
		WillReturnRows(tagRows().AddRow(3, now, now, 1, "vacation", "plane", "#0284C7", true))

	// 新名称未被占用
	mock.ExpectQuery("SELECT .* FROM `transaction_tags`").
		WithArgs(uint(1), "holiday", uint(3)).
		WillReturnRows(tagRows())

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `transaction_tags` SET").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	// 返回更新后的记录
	mock.ExpectQuery("SELECT .* FROM `transaction_tags`").
		WillReturnRows(tagRows().AddRow(3, now, now, 1, "holiday", "plane", "#0284C7", true))

	router := gin.New()
	router.PUT("/tags/:id", setUserID(1), NewTagHandler().Update)

	body := `{"name":"holiday"}`
	req := httptest.NewRequest("PUT", "/tags/3", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 200, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp["data"].(map[string]interface{})
	assert.Equal(t, "holiday", data["name"])
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTagHandler_Create_DuplicateNameConflict(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()
	config.GlobalConfig = testAuthConfig()
	defer func() { config.GlobalConfig = nil }()

	now := time.Now()
	mock.ExpectQuery("SELECT .* FROM `transaction_tags`").
		WithArgs(uint(1), "vacation").
		WillReturnRows(tagRows().AddRow(3, now, now, 1, "vacation", "plane", "#0284C7", true))

	router := gin.New()
	router.POST("/tags", setUserID(1), NewTagHandler().Create)

	body := `{"name":"vacation"}`
	req := httptest.NewRequest("POST", "/tags", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 409, w.Code)
	assert.Contains(t, w.Body.String(), "标签名称已存在")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTagHandler_Create_SameNameDifferentUserAllowed(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()
	config.GlobalConfig = testAuthConfig()
	defer func() { config.GlobalConfig = nil }()

	// 重名检查按 (user_id, name)，别的用户的同名标签不构成冲突
	mock.ExpectQuery("SELECT .* FROM `transaction_tags`").
		WithArgs(uint(2), "vacation").
		WillReturnRows(tagRows())

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `transaction_tags`").
		WillReturnResult(sqlmock.NewResult(7, 1))
	mock.ExpectCommit()

	router := gin.New()
	router.POST("/tags", setUserID(2), NewTagHandler().Create)

	body := `{"name":"vacation"}`
	req := httptest.NewRequest("POST", "/tags", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 200, w.Code)
	assert.Contains(t, w.Body.String(), "创建成功")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTagHandler_Delete_RemovesLinksInSameTransaction(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()
	config.GlobalConfig = testAuthConfig()
	defer func() { config.GlobalConfig = nil }()

	now := time.Now()
	mock.ExpectQuery("SELECT .* FROM `transaction_tags`").
		WithArgs(uint(3), uint(1)).
		WillReturnRows(tagRows().AddRow(3, now, now, 1, "vacation", "plane", "#0284C7", true))

	// 标签无软删除字段，关联和本体都是物理删除
	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM transaction_tag_links").
		WithArgs(uint(3)).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec("DELETE FROM `transaction_tags`").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	router := gin.New()
	router.DELETE("/tags/:id", setUserID(1), NewTagHandler().Delete)

	req := httptest.NewRequest("DELETE", "/tags/3", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 200, w.Code)
	assert.Contains(t, w.Body.String(), "删除成功")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTagHandler_Delete_OtherUsersTagIs404(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()
	config.GlobalConfig = testAuthConfig()
	defer func() { config.GlobalConfig = nil }()

	mock.ExpectQuery("SELECT .* FROM `transaction_tags`").
		WithArgs(uint(8), uint(1)).
		WillReturnRows(tagRows())

	router := gin.New()
	router.DELETE("/tags/:id", setUserID(1), NewTagHandler().Delete)

	req := httptest.NewRequest("DELETE", "/tags/8", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 404, w.Code)
	assert.Contains(t, w.Body.String(), "标签不存在")
	require.NoError(t, mock.ExpectationsWereMet())
}
