package handlers

// adminHTMLTemplate is the operator dashboard. Placeholders, in order:
// last-refreshed stamp (%s), cache TTL seconds (%d), chart window days (%d),
// embedded bundle JSON (%s), chart window days again for the JS constant (%d).
const adminHTMLTemplate = `
<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <title>RailPick Dashboard</title>
  <script src="https://cdn.jsdelivr.net/npm/chart.js"></script>
  <style>
    body { font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", sans-serif; padding: 20px; background: #fafafa; }
    h2 { margin-bottom: 4px; }
    .caption { color: #777; font-size: 13px; margin-bottom: 16px; }
    .kpi-row { display: flex; gap: 16px; flex-wrap: wrap; margin-bottom: 24px; }
    .kpi { background: #fff; border: 1px solid #e3e3e3; border-radius: 8px; padding: 14px 22px; min-width: 130px; }
    .kpi .label { color: #888; font-size: 12px; }
    .kpi .value { font-size: 26px; font-weight: 600; }
    .grid { display: grid; grid-template-columns: 1fr 1fr; gap: 24px; margin-bottom: 24px; }
    .panel { background: #fff; border: 1px solid #e3e3e3; border-radius: 8px; padding: 16px; }
    .panel h3 { margin-top: 0; font-size: 15px; }
    .wide { grid-column: 1 / span 2; }
    table { border-collapse: collapse; width: 100%%; font-size: 13px; }
    th, td { border-bottom: 1px solid #eee; padding: 6px 10px; text-align: left; }
    th { color: #888; font-weight: 500; }
    button { padding: 8px 16px; border: none; border-radius: 6px; background: #0052A4; color: #fff; cursor: pointer; }
  </style>
</head>
<body>
  <h2>RailPick Dashboard</h2>
  <div class="caption">Last refreshed: %s (%d-second cache) &middot; <button id="refreshBtn">Refresh</button></div>

  <div class="kpi-row" id="kpis"></div>

  <div class="grid">
    <div class="panel"><h3>Login providers</h3><canvas id="providerChart"></canvas></div>
    <div class="panel"><h3>Smart-reserve consent</h3><canvas id="consentChart"></canvas></div>
    <div class="panel wide"><h3>Daily active trial devices (last %d days)</h3><canvas id="dailyChart"></canvas></div>
    <div class="panel"><h3>Device models</h3><canvas id="modelChart"></canvas></div>
    <div class="panel"><h3>Top routes</h3><canvas id="routeChart"></canvas></div>
    <div class="panel"><h3>Train types</h3><canvas id="trainChart"></canvas></div>
    <div class="panel"><h3>New trial devices per day</h3><canvas id="newDevicesChart"></canvas></div>
    <div class="panel wide"><h3>Users</h3><table id="userTable"></table></div>
    <div class="panel wide"><h3>Collection summary</h3><table id="summaryTable"></table></div>
  </div>

  <!-- Server-embedded aggregate bundle -->
  <script>
    const BUNDLE = %s;
    const WINDOW_DAYS = %d;
  </script>

  <script>
    const providerColors = { kakao: '#FEE500', google: '#4285F4', naver: '#03C75A' };

    function kpi(label, value) {
      return '<div class="kpi"><div class="label">' + label + '</div><div class="value">' + value + '</div></div>';
    }

    function renderKPIs(b) {
      const rate = Math.round(b.consentRate * 100);
      document.getElementById('kpis').innerHTML =
        kpi('Trial devices', b.trialsTotal.toLocaleString()) +
        kpi('Active today', b.recent1d.toLocaleString()) +
        kpi('Active 7d', b.recent7d.toLocaleString()) +
        kpi('Logged-in users', b.usersTotal.toLocaleString()) +
        kpi('Consent rate', rate + '%%');
    }

    function doughnut(id, labels, values, colors) {
      new Chart(document.getElementById(id).getContext('2d'), {
        type: 'doughnut',
        data: { labels, datasets: [{ data: values, backgroundColor: colors }] },
        options: { responsive: true }
      });
    }

    function hbar(id, entries, color) {
      new Chart(document.getElementById(id).getContext('2d'), {
        type: 'bar',
        data: {
          labels: entries.map(e => e.label),
          datasets: [{ data: entries.map(e => e.count), backgroundColor: color }]
        },
        options: { indexAxis: 'y', responsive: true, plugins: { legend: { display: false } } }
      });
    }

    function dailyBar(id, buckets, windowDays, color) {
      const cutoff = new Date(Date.now() - windowDays * 86400000).toISOString().slice(0, 10);
      const keys = Object.keys(buckets).filter(k => k >= cutoff).sort();
      new Chart(document.getElementById(id).getContext('2d'), {
        type: 'bar',
        data: { labels: keys, datasets: [{ data: keys.map(k => buckets[k]), backgroundColor: color }] },
        options: { responsive: true, plugins: { legend: { display: false } }, scales: { y: { beginAtZero: true, ticks: { precision: 0 } } } }
      });
    }

    function renderUserTable(users) {
      let html = '<tr><th>Name</th><th>Provider</th><th>Devices</th><th>Tickets</th></tr>';
      for (const u of users) {
        html += '<tr><td>' + (u.name || '-') + '</td><td>' + u.provider + '</td><td>' + u.devices + '</td><td>' + u.tickets + '</td></tr>';
      }
      document.getElementById('userTable').innerHTML = html;
    }

    function renderSummaryTable(b) {
      const rows = [
        ['users', b.usersTotal, 'social-login users (' + b.devicesTotal + ' devices, ' + b.ticketsTotal + ' tickets)'],
        ['device_trials', b.trialsTotal, 'trial installs (7d active: ' + b.recent7d + ', 30d: ' + b.recent30d + ')'],
        ['consent_logs', b.consentTotal, 'smart-reserve consent (agreed: ' + b.consentAgreed + ', declined: ' + (b.consentTotal - b.consentAgreed) + ')'],
        ['email_mappings', b.emailMappings, 'social-login email mappings']
      ];
      let html = '<tr><th>Collection</th><th>Documents</th><th>Notes</th></tr>';
      for (const r of rows) {
        html += '<tr><td>' + r[0] + '</td><td>' + r[1] + '</td><td>' + r[2] + '</td></tr>';
      }
      document.getElementById('summaryTable').innerHTML = html;
    }

    (function init() {
      const b = BUNDLE;
      renderKPIs(b);

      const provLabels = Object.keys(b.providers || {});
      doughnut('providerChart', provLabels, provLabels.map(p => b.providers[p]),
        provLabels.map(p => providerColors[p] || '#999'));

      doughnut('consentChart', ['agreed', 'declined'],
        [b.consentAgreed, b.consentTotal - b.consentAgreed], ['#03C75A', '#f0f0f0']);

      dailyBar('dailyChart', b.dailyActive || {}, WINDOW_DAYS, '#0052A4');
      dailyBar('newDevicesChart', b.newDevicesDaily || {}, WINDOW_DAYS, '#6366F1');

      hbar('modelChart', b.topDeviceModels || [], '#6366F1');
      hbar('routeChart', b.topRoutes || [], '#0052A4');

      const trainLabels = Object.keys(b.trainTypes || {});
      doughnut('trainChart', trainLabels, trainLabels.map(k => b.trainTypes[k]),
        ['#66C2A5', '#FC8D62', '#8DA0CB', '#E78AC3', '#A6D854']);

      renderUserTable(b.users || []);
      renderSummaryTable(b);

      document.getElementById('refreshBtn').addEventListener('click', async () => {
        await fetch('/api/v1/dashboard/refresh', { method: 'POST' });
        location.reload();
      });
    })();
  </script>
</body>
</html>
`
