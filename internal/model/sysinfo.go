package model

// CPUInfo describes one logical CPU of the monitored host.
type CPUInfo struct {
	CPU        int      `json:"cpu" yaml:"cpu"`
	VendorID   string   `json:"vendorId" yaml:"vendor_id"`
	Family     string   `json:"family" yaml:"family"`
	Model      string   `json:"model" yaml:"model"`
	Stepping   int      `json:"stepping" yaml:"stepping"`
	PhysicalID string   `json:"physicalId" yaml:"physical_id"`
	CoreID     string   `json:"coreId" yaml:"core_id"`
	Cores      int      `json:"cores" yaml:"cores"`
	ModelName  string   `json:"modelName" yaml:"model_name"`
	Mhz        float64  `json:"mhz" yaml:"mhz"`
	CacheSize  int      `json:"cacheSize" yaml:"cache_size"`
	Flags      []string `json:"flags" yaml:"flags"`
	Microcode  string   `json:"microcode" yaml:"microcode"`
}

// MemoryInfo is the subset of virtual memory stats the dashboard renders.
type MemoryInfo struct {
	Total       uint64  `json:"total" yaml:"total"`
	Available   uint64  `json:"available" yaml:"available"`
	Used        uint64  `json:"used" yaml:"used"`
	UsedPercent float64 `json:"usedPercent" yaml:"used_percent"`
	Free        uint64  `json:"free" yaml:"free"`
	Cached      uint64  `json:"cached" yaml:"cached"`
	SwapTotal   uint64  `json:"swaptotal" yaml:"swap_total"`
	SwapFree    uint64  `json:"swapfree" yaml:"swap_free"`
}

// HostInfo describes the monitored host.
type HostInfo struct {
	Hostname        string `json:"hostname" yaml:"hostname"`
	Uptime          uint64 `json:"uptime" yaml:"uptime"`
	BootTime        uint64 `json:"bootTime" yaml:"boot_time"`
	Procs           uint64 `json:"procs" yaml:"procs"`
	OS              string `json:"os" yaml:"os"`
	Platform        string `json:"platform" yaml:"platform"`
	PlatformFamily  string `json:"platformFamily" yaml:"platform_family"`
	PlatformVersion string `json:"platformVersion" yaml:"platform_version"`
	KernelVersion   string `json:"kernelVersion" yaml:"kernel_version"`
	KernelArch      string `json:"kernelArch" yaml:"kernel_arch"`
}

// SysInfo is the single-object response of the system info endpoint.
type SysInfo struct {
	CPUInfo    []CPUInfo  `json:"cpu_info" yaml:"cpu_info"`
	MemoryInfo MemoryInfo `json:"memory_info" yaml:"memory_info"`
	DiskInfo   []any      `json:"disk_info" yaml:"disk_info"`
	HostInfo   HostInfo   `json:"host_info" yaml:"host_info"`
	Uptime     uint64     `json:"uptime" yaml:"uptime"`
}
