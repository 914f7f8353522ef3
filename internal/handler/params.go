package handler

import (
	"fmt"
	"strconv"
	"time"

	"record-system/internal/service"
	"record-system/pkg/response"

	"github.com/gin-gonic/gin"
)

// pathID 解析路径中的:id参数，非整数时写入400响应并返回false
func pathID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "id must be an integer")
		return 0, false
	}
	return id, true
}

// pathUintID :id为自增主键的变体
func pathUintID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "id must be a positive integer")
		return 0, false
	}
	return uint(id), true
}

// queryInt 解析可选整数查询参数，未提供时返回nil
func queryInt(c *gin.Context, name string) (*int, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, true
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		response.BadRequest(c, fmt.Sprintf("%s must be an integer", name))
		return nil, false
	}
	return &v, true
}

// queryBool 解析可选布尔查询参数，未提供时返回nil
func queryBool(c *gin.Context, name string) (*bool, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, true
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		response.BadRequest(c, fmt.Sprintf("%s must be a boolean", name))
		return nil, false
	}
	return &v, true
}

// queryUint 解析可选无符号整数查询参数，未提供时返回0（过滤器约定0为未设置）
func queryUint(c *gin.Context, name string) (uint, bool) {
	raw := c.Query(name)
	if raw == "" {
		return 0, true
	}
	v, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		response.BadRequest(c, fmt.Sprintf("%s must be a positive integer", name))
		return 0, false
	}
	return uint(v), true
}

// queryTime 解析可选时间过滤参数，接受RFC 3339或YYYY-MM-DD
func queryTime(c *gin.Context, name string) (*time.Time, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, true
	}
	ts, err := service.ParseTimestamp(raw)
	if err != nil {
		response.FromError(c, err)
		return nil, false
	}
	return &ts, true
}

// queryRange 读取offset/limit分页参数
// 非整数值按零值处理，越界与默认值收敛由服务层完成
func queryRange(c *gin.Context) (int, int) {
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	return offset, limit
}
