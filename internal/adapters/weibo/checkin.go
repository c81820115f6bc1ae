package weibo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/bnema/weibo-supertopic-cli/internal/domain"
)

const (
	// Sentinel code the service returns for a fresh successful check-in.
	checkinSuccessCode = "100000"

	// The mutating call gets a much longer courtesy delay than listing.
	checkinDelayMin = 15 * time.Second
	checkinDelayMax = 35 * time.Second

	checkinUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/136.0.0.0 Safari/537.36 Edg/136.0.0.0"
)

type checkinResponse struct {
	Code string `json:"code"`
	Msg  string `json:"msg"`
}

// Checkin posts the check-in action for one topic and classifies the
// response. A body reporting the topic as already checked in today counts
// as success; transport and protocol failures are logged and reported as
// (false, reason) without ever raising.
func (s *Session) Checkin(ctx context.Context, topic domain.Topic) (bool, string) {
	s.logger.Debug("waiting before check-in", "topic", topic.Title)
	s.sleeper.Sleep(ctx, checkinDelayMin, checkinDelayMax)

	topicURL := fmt.Sprintf("%s/p/%s/super_index", s.baseURL, topic.ContainerID)

	params := url.Values{}
	params.Set("ajwvr", "6")
	params.Set("api", "http://i.huati.weibo.com/aj/super/checkin")
	params.Set("texta", "签到")
	params.Set("textb", "已签到")
	params.Set("status", "0")
	params.Set("id", topic.ContainerID)
	params.Set("location", "page_极速版超话_super_index")
	params.Set("timezone", "GMT+0800")
	params.Set("lang", "zh-cn")
	params.Set("plat", "Win32")
	params.Set("ua", checkinUserAgent)
	params.Set("screen", "1366*768")
	params.Set("__rnd", strconv.FormatInt(s.clock.Now().UnixMilli(), 10))

	req, err := s.newRequest(ctx, http.MethodPost, s.baseURL+"/p/aj/general/button?"+params.Encode())
	if err != nil {
		s.logger.Error("check-in: build request", "topic", topic.Title, "error", err)
		return false, "网络错误: " + err.Error()
	}
	// The service rejects check-ins whose Referer is not the topic page.
	req.Header.Set("Referer", topicURL)
	req.Header.Set("X-Requested-With", "XMLHttpRequest")
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "*/*")

	start := s.clock.Now()
	resp, err := s.client.Do(req)
	if err != nil {
		s.logger.Error("check-in request failed", "topic", topic.Title, "error", err)
		return false, "网络错误: " + err.Error()
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		s.logger.Error("check-in: read response", "topic", topic.Title, "error", err)
		return false, "网络错误: " + err.Error()
	}
	elapsed := s.clock.Now().Sub(start)

	if resp.StatusCode != http.StatusOK {
		s.logger.Error("check-in request failed", "topic", topic.Title, "status", resp.StatusCode)
		return false, fmt.Sprintf("网络错误: HTTP %d", resp.StatusCode)
	}

	var result checkinResponse
	if err := json.Unmarshal(body, &result); err != nil {
		s.logger.Error("check-in response is not valid JSON",
			"topic", topic.Title, "body", strings.TrimSpace(string(body)))
		return false, "响应不是有效的JSON"
	}

	if result.Code == checkinSuccessCode {
		s.logger.Info("check-in succeeded", "topic", topic.Title, "elapsed", elapsed)
		return true, "签到成功"
	}

	msg := result.Msg
	if msg == "" {
		msg = "未知错误"
	}
	s.logger.Warn("check-in rejected", "topic", topic.Title, "reason", msg, "elapsed", elapsed)

	// Re-entry on the same day is idempotent, not a failure.
	if strings.Contains(msg, "已签到") || strings.Contains(msg, "重复签到") {
		return true, msg
	}

	return false, msg
}
