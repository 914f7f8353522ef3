package main

import (
	"fmt"
	"net/http"
	"os"
	"runtime"
	"sort"
	"strconv"
	"sync"
	"time"
)

// -------------------- 运行时监控 --------------------

type RuntimeStats struct {
	Timestamp  time.Time
	HeapMB     float64
	SysMB      float64
	Goroutines int
}

type Monitor struct {
	stats    []RuntimeStats
	interval time.Duration
	stopChan chan struct{}
	done     chan struct{}
}

func NewMonitor(interval time.Duration) *Monitor {
	return &Monitor{
		stats:    make([]RuntimeStats, 0, 512),
		interval: interval,
		stopChan: make(chan struct{}),
		done:     make(chan struct{}),
	}
}

func (m *Monitor) collectStats() RuntimeStats {
	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)
	stats := RuntimeStats{
		Timestamp:  time.Now(),
		HeapMB:     float64(ms.Alloc) / 1024 / 1024,
		SysMB:      float64(ms.Sys) / 1024 / 1024,
		Goroutines: runtime.NumGoroutine(),
	}
	m.stats = append(m.stats, stats)
	return stats
}

func (m *Monitor) Start() {
	go func() {
		defer close(m.done)
		ticker := time.NewTicker(m.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				m.printStats(m.collectStats())
			case <-m.stopChan:
				return
			}
		}
	}()
}

func (m *Monitor) Stop() {
	close(m.stopChan)
	<-m.done
}

func (m *Monitor) printStats(s RuntimeStats) {
	fmt.Printf("[%s] 堆内存: %.1fMB | 系统内存: %.1fMB | Goroutines: %d\n",
		s.Timestamp.Format("15:04:05"), s.HeapMB, s.SysMB, s.Goroutines)
}

func (m *Monitor) GenerateReport() {
	if len(m.stats) == 0 {
		fmt.Println("没有监控数据")
		return
	}
	var sumHeap, maxHeap float64
	var sumGo, maxGo int
	for _, s := range m.stats {
		sumHeap += s.HeapMB
		sumGo += s.Goroutines
		if s.HeapMB > maxHeap {
			maxHeap = s.HeapMB
		}
		if s.Goroutines > maxGo {
			maxGo = s.Goroutines
		}
	}
	n := float64(len(m.stats))
	fmt.Println("\n=== 运行时监控报告 ===")
	fmt.Printf("持续: %v\n", m.stats[len(m.stats)-1].Timestamp.Sub(m.stats[0].Timestamp))
	fmt.Printf("平均堆内存: %.1fMB, 峰值堆内存: %.1fMB\n", sumHeap/n, maxHeap)
	fmt.Printf("平均Goroutine: %d, 峰值Goroutine: %d\n", int(float64(sumGo)/n+0.5), maxGo)
}

func (m *Monitor) SaveToFile(filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer f.Close()
	_, _ = f.WriteString("Timestamp,HeapMB,SysMB,Goroutines\n")
	for _, s := range m.stats {
		line := fmt.Sprintf("%s,%.2f,%.2f,%d\n",
			s.Timestamp.Format("2006-01-02 15:04:05"), s.HeapMB, s.SysMB, s.Goroutines)
		_, _ = f.WriteString(line)
	}
	return nil
}

// -------------------- HTTP 并发压测 --------------------

type BenchStats struct {
	mu        sync.Mutex
	latencies []time.Duration
	failed    int
}

func (s *BenchStats) Add(ok bool, latency time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if ok {
		s.latencies = append(s.latencies, latency)
	} else {
		s.failed++
	}
}

// percentile 读取排序后延迟序列的分位值，须在排序之后调用
func (s *BenchStats) percentile(p float64) time.Duration {
	if len(s.latencies) == 0 {
		return 0
	}
	idx := int(float64(len(s.latencies)-1) * p)
	return s.latencies[idx]
}

func hit(client *http.Client, url string, stats *BenchStats) {
	start := time.Now()
	resp, err := client.Get(url)
	lat := time.Since(start)
	ok := false
	if err == nil {
		resp.Body.Close()
		ok = resp.StatusCode == http.StatusOK
	}
	stats.Add(ok, lat)
}

func runHTTPBench(base string, concurrency int, duration time.Duration) {
	fmt.Println("\n=== 出借API并发测试开始 ===")
	fmt.Printf("目标: %s 并发: %d 时长: %v\n", base, concurrency, duration)

	// 只读端点混合：列表、行数和过滤
	endpoints := []string{
		"/games/",
		"/games/count",
		"/games/filter?available=true",
		"/friends/",
		"/loans/",
	}

	stats := &BenchStats{}
	client := &http.Client{Timeout: 8 * time.Second}
	deadline := time.Now().Add(duration)

	var wg sync.WaitGroup
	start := time.Now()
	for i := 0; i < concurrency; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			for j := 0; time.Now().Before(deadline); j++ {
				hit(client, base+endpoints[(id+j)%len(endpoints)], stats)
			}
		}(i)
	}
	wg.Wait()
	took := time.Since(start)

	sort.Slice(stats.latencies, func(a, b int) bool { return stats.latencies[a] < stats.latencies[b] })

	total := len(stats.latencies) + stats.failed
	fmt.Println("\n=== 出借API测试结果 ===")
	fmt.Printf("耗时: %v\n", took)
	fmt.Printf("总请求: %d 成功: %d 失败: %d\n", total, len(stats.latencies), stats.failed)
	if len(stats.latencies) > 0 {
		fmt.Printf("延迟 p50: %v p90: %v p99: %v 最大: %v\n",
			stats.percentile(0.50), stats.percentile(0.90), stats.percentile(0.99),
			stats.latencies[len(stats.latencies)-1])
		fmt.Printf("QPS: %.2f\n", float64(len(stats.latencies))/took.Seconds())
	}
	if total > 0 {
		fmt.Printf("成功率: %.2f%%\n", float64(len(stats.latencies))/float64(total)*100)
	}
}

// -------------------- 入口 --------------------

func main() {
	// 参数：并发数 时长(秒) 目标地址
	concurrency := 5
	seconds := 10
	base := "http://localhost:8080"

	if len(os.Args) > 1 {
		if v, err := strconv.Atoi(os.Args[1]); err == nil && v > 0 {
			concurrency = v
		}
	}
	if len(os.Args) > 2 {
		if v, err := strconv.Atoi(os.Args[2]); err == nil && v > 0 {
			seconds = v
		}
	}
	if len(os.Args) > 3 {
		base = os.Args[3]
	}

	fmt.Println("=== 出借服务并发与监控测试 ===")
	fmt.Printf("开始时间: %s\n", time.Now().Format("2006-01-02 15:04:05"))
	fmt.Printf("目标: %s 并发: %d 时长: %ds\n", base, concurrency, seconds)

	mon := NewMonitor(1 * time.Second)
	mon.Start()

	runHTTPBench(base, concurrency, time.Duration(seconds)*time.Second)

	mon.Stop()
	mon.GenerateReport()
	if err := mon.SaveToFile("bench_monitor.csv"); err != nil {
		fmt.Println("保存监控数据失败:", err)
	} else {
		fmt.Println("监控数据已保存: bench_monitor.csv")
	}

	fmt.Println("\n=== 测试完成 ===")
}
