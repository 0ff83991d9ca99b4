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

func categoryRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "created_at", "updated_at", "user_id", "name", "icon", "color", "is_visible", "is_archived"})
}

func TestCategoryHandler_List_ExcludesArchivedAndHidden(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()
	config.GlobalConfig = testAuthConfig()
	defer func() { config.GlobalConfig = nil }()

	now := time.Now()
	// 默认列表：is_archived = false 且 is_visible = true
	mock.ExpectQuery("SELECT .* FROM `transaction_categories`").
		WithArgs(uint(1), false, true).
		WillReturnRows(categoryRows().
			AddRow(1, now, now, 1, "Salary", "banknote", "#22C55E", true, false).
			AddRow(2, now, now, 1, "Groceries", "shopping-cart", "#F97316", true, false))

	// 每个类别附带引用它的交易数
	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `transactions`").
		WithArgs(uint(1)).
		WillReturnRows(sqlmock.NewRows([]string{"count(*)"}).AddRow(3))
	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `transactions`").
		WithArgs(uint(2)).
		WillReturnRows(sqlmock.NewRows([]string{"count(*)"}).AddRow(0))

	router := gin.New()
	router.GET("/categories", setUserID(1), NewCategoryHandler().List)

	req := httptest.NewRequest("GET", "/categories", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 200, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp["data"].([]interface{})
	require.Len(t, data, 2)
	first := data[0].(map[string]interface{})
	assert.InDelta(t, 3, first["transaction_count"].(float64), 0.001)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCategoryHandler_List_IncludeHidden(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()
	config.GlobalConfig = testAuthConfig()
	defer func() { config.GlobalConfig = nil }()

	now := time.Now()
	// include_hidden=true 时不过滤 is_visible，但归档类别依然排除
	mock.ExpectQuery("SELECT .* FROM `transaction_categories`").
		WithArgs(uint(1), false).
		WillReturnRows(categoryRows().
			AddRow(1, now, now, 1, "Salary", "banknote", "#22C55E", true, false).
			AddRow(3, now, now, 1, "Lottery", "clover", "#A3E635", false, false))

	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `transactions`").
		WithArgs(uint(1)).
		WillReturnRows(sqlmock.NewRows([]string{"count(*)"}).AddRow(3))
	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `transactions`").
		WithArgs(uint(3)).
		WillReturnRows(sqlmock.NewRows([]string{"count(*)"}).AddRow(1))

	router := gin.New()
	router.GET("/categories", setUserID(1), NewCategoryHandler().List)

	req := httptest.NewRequest("GET", "/categories?include_hidden=true", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 200, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp["data"].([]interface{}), 2)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCategoryHandler_Create(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()
	config.GlobalConfig = testAuthConfig()
	defer func() { config.GlobalConfig = nil }()

	// 重名检查：无记录
	mock.ExpectQuery("SELECT .* FROM `transaction_categories`").
		WithArgs(uint(1), "Groceries").
		WillReturnRows(categoryRows())

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `transaction_categories`").
		WillReturnResult(sqlmock.NewResult(10, 1))
	mock.ExpectCommit()

	router := gin.New()
	router.POST("/categories", setUserID(1), NewCategoryHandler().Create)

	body := `{"name":"Groceries","icon":"shopping-cart","color":"#F97316"}`
	req := httptest.NewRequest("POST", "/categories", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 200, w.Code)
	assert.Contains(t, w.Body.String(), "创建成功")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCategoryHandler_Create_DuplicateNameConflict(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()
	config.GlobalConfig = testAuthConfig()
	defer func() { config.GlobalConfig = nil }()

	now := time.Now()
	// 同名类别已存在，即便它已归档也占用名称
	mock.ExpectQuery("SELECT .* FROM `transaction_categories`").
		WithArgs(uint(1), "Groceries").
		WillReturnRows(categoryRows().AddRow(5, now, now, 1, "Groceries", "", "#64748b", true, true))

	router := gin.New()
	router.POST("/categories", setUserID(1), NewCategoryHandler().Create)

	body := `{"name":"Groceries"}`
	req := httptest.NewRequest("POST", "/categories", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 409, w.Code)
	assert.Contains(t, w.Body.String(), "类别名称已存在")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCategoryHandler_Update_OtherUsersCategoryIs404(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()
	config.GlobalConfig = testAuthConfig()
	defer func() { config.GlobalConfig = nil }()

	mock.ExpectQuery("SELECT .* FROM `transaction_categories`").
		WithArgs(uint(9), uint(1)).
		WillReturnRows(categoryRows())

	router := gin.New()
	router.PUT("/categories/:id", setUserID(1), NewCategoryHandler().Update)

	body := `{"name":"Renamed"}`
	req := httptest.NewRequest("PUT", "/categories/9", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 404, w.Code)
	assert.Contains(t, w.Body.String(), "类别不存在")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCategoryHandler_Update_Rename(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()
	config.GlobalConfig = testAuthConfig()
	defer func() { config.GlobalConfig = nil }()

	now := time.Now()
	mock.ExpectQuery("SELECT .* FROM `transaction_categories`").
		WithArgs(uint(2), uint(1)).
		WillReturnRows(categoryRows().AddRow(2, now, now, 1, "Groceries", "shopping-cart", "#F97316", true, false))

	// 新名称未被占用
	mock.ExpectQuery("SELECT .* FROM `transaction_categories`").
		WithArgs(uint(1), "Food", uint(2)).
		WillReturnRows(categoryRows())

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `transaction_categories` SET").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	// 返回更新后的记录
	mock.ExpectQuery("SELECT .* FROM `transaction_categories`").
		WillReturnRows(categoryRows().AddRow(2, now, now, 1, "Food", "shopping-cart", "#F97316", true, false))

	router := gin.New()
	router.PUT("/categories/:id", setUserID(1), NewCategoryHandler().Update)

	body := `{"name":"Food"}`
	req := httptest.NewRequest("PUT", "/categories/2", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 200, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp["data"].(map[string]interface{})
	assert.Equal(t, "Food", data["name"])
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCategoryHandler_Archive(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()
	config.GlobalConfig = testAuthConfig()
	defer func() { config.GlobalConfig = nil }()

	now := time.Now()
	mock.ExpectQuery("SELECT .* FROM `transaction_categories`").
		WithArgs(uint(2), uint(1)).
		WillReturnRows(categoryRows().AddRow(2, now, now, 1, "Groceries", "shopping-cart", "#F97316", true, false))

	// 归档只翻转标记，不删除记录
	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `transaction_categories` SET").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	router := gin.New()
	router.DELETE("/categories/:id", setUserID(1), NewCategoryHandler().Archive)

	req := httptest.NewRequest("DELETE", "/categories/2", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 200, w.Code)
	assert.Contains(t, w.Body.String(), "归档成功")
	require.NoError(t, mock.ExpectationsWereMet())
}
